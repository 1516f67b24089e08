// Package source finds the spreadsheet a page should read and loads it into
// a model.Dataset.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/Veraticus/painel/internal/common"
)

// ExtXLSX is the extension every page folder is scanned for.
const ExtXLSX = ".xlsx"

// Candidate is a file found in a page folder.
type Candidate struct {
	Path    string
	Name    string
	ModTime int64
}

// List returns the files in dir with the given extension (case-insensitive),
// newest first. Files with equal modification times are ordered by name.
func List(fs afero.Fs, dir, ext string) ([]Candidate, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFound(dir, err)
		}
		return nil, common.NewUserError(
			fmt.Sprintf("Não foi possível ler a pasta %s", dir),
			fmt.Errorf("%w: %v", common.ErrUnreadableSource, err),
		)
	}

	ext = strings.ToLower(ext)
	var out []Candidate
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(strings.ToLower(info.Name()), ext) {
			continue
		}
		// Office lock files
		if strings.HasPrefix(info.Name(), "~$") {
			continue
		}
		out = append(out, Candidate{
			Path:    filepath.Join(dir, info.Name()),
			Name:    info.Name(),
			ModTime: info.ModTime().UnixNano(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ModTime != out[j].ModTime {
			return out[i].ModTime > out[j].ModTime
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// MostRecent returns the newest file with the extension in dir.
func MostRecent(fs afero.Fs, dir, ext string) (string, error) {
	files, err := List(fs, dir, ext)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", noFiles(dir, ext)
	}
	return files[0].Path, nil
}

// ByKeywords tries each keyword in order and returns the newest file whose
// lower-cased name contains it. The first keyword with any match wins.
func ByKeywords(fs afero.Fs, dir, ext string, keywords ...string) (string, error) {
	files, err := List(fs, dir, ext)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", noFiles(dir, ext)
	}

	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		for _, f := range files {
			if strings.Contains(strings.ToLower(f.Name), kw) {
				return f.Path, nil
			}
		}
	}

	return "", common.NewUserError(
		fmt.Sprintf("Nenhum arquivo correspondente a %s encontrado em %s", strings.Join(keywords, "/"), dir),
		common.ErrSourceNotFound,
	)
}

// FirstMatching returns the first file, in name order, whose lower-cased
// name contains keyword, falling back to the first file of the folder.
func FirstMatching(fs afero.Fs, dir, ext, keyword string) (string, error) {
	files, err := List(fs, dir, ext)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", noFiles(dir, ext)
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	for _, f := range files {
		if strings.Contains(strings.ToLower(f.Name), strings.ToLower(keyword)) {
			return f.Path, nil
		}
	}
	return files[0].Path, nil
}

// Exact returns dir/name when it exists.
func Exact(fs afero.Fs, dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	ok, err := afero.Exists(fs, path)
	if err != nil {
		return "", common.NewUserError(
			fmt.Sprintf("Não foi possível acessar %s", path),
			fmt.Errorf("%w: %v", common.ErrUnreadableSource, err),
		)
	}
	if !ok {
		return "", notFound(path, os.ErrNotExist)
	}
	return path, nil
}

func notFound(path string, err error) error {
	return common.NewUserError(
		fmt.Sprintf("Arquivo ou pasta não encontrado: %s", path),
		fmt.Errorf("%w: %v", common.ErrSourceNotFound, err),
	)
}

func noFiles(dir, ext string) error {
	return common.NewUserError(
		fmt.Sprintf("Nenhum arquivo %s encontrado em %s", ext, dir),
		common.ErrSourceNotFound,
	)
}
