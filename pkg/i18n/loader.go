package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads every *.yaml and *.yml file at the root of fsys and merges
// them per language. Later files override earlier keys at the top level.
func LoadYAML(ctx context.Context, fsys fs.FS) (map[string]map[string]any, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, ErrNoTranslations
	}

	all := make(map[string]map[string]any)
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}

		parsed, err := ParseYAML(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		for lang, tree := range parsed {
			if all[lang] == nil {
				all[lang] = make(map[string]any, len(tree))
			}
			maps.Copy(all[lang], tree)
		}
	}
	return all, nil
}

// ParseYAML parses one document of the form
//
//	en:
//	  form:
//	    sent: "Thanks!"
func ParseYAML(content []byte) (map[string]map[string]any, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrFailedToParseYAML, lang, val)
		}
		result[lang] = tree
	}
	if len(result) == 0 {
		return nil, ErrNoTranslations
	}
	return result, nil
}
