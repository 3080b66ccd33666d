package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watch reloads the config whenever the file at path is written or replaced
// and hands each successfully parsed version to onChange. It watches the
// parent directory because editors and Save replace the file by rename.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, log *logrus.Entry, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating config watcher")
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return errors.Wrapf(err, "watching %s", dir)
	}
	name := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != name || !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				log.WithError(err).Warn("config reload failed, keeping current settings")
				continue
			}
			log.WithField("path", path).Info("config reloaded")
			onChange(cfg)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("config watcher error")
		}
	}
}
