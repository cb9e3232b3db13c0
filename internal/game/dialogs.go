package game

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/spiral-visualization/internal/audio"
)

// selectAudioFile asks for an audio file. ok is false when the user
// cancels.
func selectAudioFile() (path string, ok bool, err error) {
	path, err = zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", false, nil
		}
		return "", false, err
	}
	return path, true, nil
}

// selectExportFile asks where to save the PNG, suggesting name.
func selectExportFile(name string) (path string, ok bool, err error) {
	path, err = zenity.SelectFileSave(
		zenity.Title("Export Spiral"),
		zenity.Filename(name),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", false, nil
		}
		return "", false, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		path += ".png"
	}
	return path, true, nil
}
