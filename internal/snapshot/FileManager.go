package snapshot

import (
	"fmt"
	json "github.com/goccy/go-json"
	"os"
	"wallfeed/internal/models"
	"wallfeed/internal/providers"
	"wallfeed/internal/snapshot/interfaces"
	"wallfeed/internal/storage"
)

// Snapshotter is a store whose whole dataset can be dumped and reloaded.
type Snapshotter interface {
	Snapshot() *models.Snapshot
	Load(snap *models.Snapshot)
}

// NewSnapshotter returns the store itself when it supports snapshots, nil
// otherwise.
func NewSnapshotter(store storage.PostStore) Snapshotter {
	if s, ok := store.(Snapshotter); ok {
		return s
	}
	return nil
}

type FileManager struct {
	store      Snapshotter
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store Snapshotter, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

func (f *FileManager) Enabled() bool {
	return f.store != nil
}

func (f *FileManager) SaveToFile(fileName string) error {
	if f.store == nil {
		return nil
	}
	snap := f.store.Snapshot()

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) LoadFromFile(fileName string) error {
	if f.store == nil {
		return nil
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infof(providers.TypeApp, "No snapshot at %s, starting empty", fileName)
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(decompressedData, &snap); err != nil {
		return err
	}
	if snap.Version > models.SnapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported %d", snap.Version, models.SnapshotVersion)
	}

	f.store.Load(&snap)
	f.logger.Infof(providers.TypeApp, "Restored %d profiles and %d posts from %s", len(snap.Profiles), len(snap.Posts), fileName)
	return nil
}
