package providers

import (
	"errors"
	"time"
	"wallfeed/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	if cv.conf.Storage.Driver != "memory" && cv.conf.Storage.DSN == "" {
		return errors.New("storage.dsn is required for driver " + cv.conf.Storage.Driver)
	}
	if cv.conf.LastSeen.Backend == "redis" && cv.conf.LastSeen.RedisAddr == "" {
		return errors.New("lastSeen.redisAddr is required for the redis backend")
	}
	if cv.conf.Persistence.Enabled && cv.conf.Persistence.FilePath == "" {
		return errors.New("persistence.filePath is required when persistence is enabled")
	}
	if cv.conf.Timeline.Timezone != "" {
		if _, err := time.LoadLocation(cv.conf.Timeline.Timezone); err != nil {
			return err
		}
	}
	return nil
}
