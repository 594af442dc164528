package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"wallfeed/internal/models"

	"github.com/spf13/cast"
)

const (
	HeaderLocalUser     = "X-Local-User"
	HeaderRemoteContact = "X-Remote-Contact"
	HeaderRemoteGroups  = "X-Remote-Groups"
	HeaderMobile        = "X-Mobile"
)

// viewerFromRequest reads the identity resolved by the authenticating proxy
// in front of the service.
func viewerFromRequest(r *http.Request) (models.Viewer, error) {
	var v models.Viewer
	var err error

	if v.LocalUserID, err = headerID(r, HeaderLocalUser); err != nil {
		return v, err
	}
	if v.RemoteContactID, err = headerID(r, HeaderRemoteContact); err != nil {
		return v, err
	}
	if raw := strings.TrimSpace(r.Header.Get(HeaderRemoteGroups)); raw != "" && v.RemoteContactID != 0 {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := cast.ToInt64E(part)
			if err != nil || id <= 0 {
				return v, fmt.Errorf("invalid %s value %q", HeaderRemoteGroups, part)
			}
			v.Groups = append(v.Groups, id)
		}
	}
	if raw := strings.TrimSpace(r.Header.Get(HeaderMobile)); raw != "" {
		if v.Mobile, err = cast.ToBoolE(raw); err != nil {
			return v, fmt.Errorf("invalid %s value %q", HeaderMobile, raw)
		}
	}
	return v, nil
}

func headerID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(name))
	if raw == "" {
		return 0, nil
	}
	id, err := cast.ToInt64E(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid %s value %q", name, raw)
	}
	return id, nil
}
