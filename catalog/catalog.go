// Package catalog loads component metadata documents, validates them against
// the shared registry, and exposes an immutable, queryable catalog.
//
// Loading is a pure load -> validate -> query pipeline: documents parse in
// parallel, reference resolution runs once the full catalog is assembled, and
// nothing mutates after that.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/GeorgeHahn/vector/components"
	"github.com/GeorgeHahn/vector/util/metrics"
	"github.com/GeorgeHahn/vector/util/workpool"
)

// Catalog is the immutable collection of all loaded component metadata
// records plus the flat services/urls registry namespaces. It is safe for
// concurrent readers; nothing mutates it after Load returns.
type Catalog struct {
	components map[string]*components.Metadata
	registry   map[string]string
}

// Load reads every document at the provided paths (files, or directories
// walked recursively) and assembles a catalog. Documents parse in parallel;
// a malformed document aborts only itself and is reported in the returned
// parse errors, ordered by document name.
func Load(logger *log.Logger, paths ...string) (*Catalog, []ParseError) {
	docs, parseErrors := readDocuments(logger, paths)
	cat, moreErrors := LoadDocuments(logger, docs)
	parseErrors = append(parseErrors, moreErrors...)
	sort.Slice(parseErrors, func(i, j int) bool {
		return parseErrors[i].Document < parseErrors[j].Document
	})
	return cat, parseErrors
}

// LoadDocuments assembles a catalog from in-memory documents. Parsing runs on
// a worker pool sized to the machine; registry assembly is single-threaded
// afterwards because duplicate detection needs global visibility.
func LoadDocuments(logger *log.Logger, docs []Document) (*Catalog, []ParseError) {
	input := make(chan Document, len(docs))
	for _, doc := range docs {
		input <- doc
	}
	close(input)

	type result struct {
		doc      Document
		parsed   parsed
		parseErr *ParseError
	}
	results := make(chan result, len(docs))

	workers := runtime.NumCPU()
	if workers > len(docs) {
		workers = len(docs)
	}
	if workers < 1 {
		workers = 1
	}

	handler := func(done <-chan struct{}) bool {
		for doc := range input {
			p, perr := parseDocument(doc)
			results <- result{doc: doc, parsed: p, parseErr: perr}
			return true
		}
		return false
	}
	pool := workpool.NewWithClose(workers, handler, func() { close(results) })
	pool.Run()

	cat := &Catalog{
		components: make(map[string]*components.Metadata),
		registry:   make(map[string]string),
	}
	var parseErrors []ParseError

	for res := range results {
		if res.parseErr != nil {
			logger.WithError(res.parseErr).Warnf("skipping document %s", res.doc.Name)
			metrics.ParseErrors.Inc()
			parseErrors = append(parseErrors, *res.parseErr)
			continue
		}
		metrics.DocumentsLoaded.Inc()
		if reg := res.parsed.registry; reg != nil {
			// Registry keys collide across documents the same way component
			// ids do, so report them the same way.
			insert := func(key, value string) {
				if _, exists := cat.registry[key]; exists {
					perr := ParseError{Document: res.doc.Name, Err: fmt.Errorf("duplicate registry entry %s", key)}
					logger.WithError(&perr).Warnf("skipping entry in document %s", res.doc.Name)
					parseErrors = append(parseErrors, perr)
					return
				}
				cat.registry[key] = value
			}
			for name, entry := range reg.Services {
				insert("services."+name, entry.Name)
				if entry.URL != "" {
					insert("services."+name+".url", entry.URL)
				}
			}
			for name, url := range reg.URLs {
				insert("urls."+name, url)
			}
			continue
		}

		meta := res.parsed.component
		id := meta.ID()
		if _, exists := cat.components[id]; exists {
			perr := ParseError{Document: res.doc.Name, Err: fmt.Errorf("duplicate component %s", id)}
			logger.WithError(&perr).Warnf("skipping document %s", res.doc.Name)
			parseErrors = append(parseErrors, perr)
			continue
		}
		cat.components[id] = meta
	}

	metrics.CatalogSize.Set(float64(len(cat.components)))
	return cat, parseErrors
}

// readDocuments expands paths into raw documents. Unreadable files and files
// with unrecognized extensions are parse errors, not fatal.
func readDocuments(logger *log.Logger, paths []string) ([]Document, []ParseError) {
	var files []string
	var parseErrors []ParseError
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			parseErrors = append(parseErrors, ParseError{Document: path, Err: err})
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := FormatForPath(p); ok {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			parseErrors = append(parseErrors, ParseError{Document: path, Err: err})
		}
	}
	sort.Strings(files)

	var docs []Document
	for _, file := range files {
		format, ok := FormatForPath(file)
		if !ok {
			parseErrors = append(parseErrors, ParseError{Document: file, Err: fmt.Errorf("unrecognized document extension")})
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			parseErrors = append(parseErrors, ParseError{Document: file, Err: err})
			continue
		}
		docs = append(docs, Document{Name: file, Format: format, Data: data})
	}
	logger.Debugf("read %d documents from %d paths", len(docs), len(paths))
	return docs, parseErrors
}

// Components returns every record ordered by catalog id.
func (c *Catalog) Components() []*components.Metadata {
	ids := make([]string, 0, len(c.components))
	for id := range c.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*components.Metadata, len(ids))
	for i, id := range ids {
		out[i] = c.components[id]
	}
	return out
}

// Component looks up a single record by kind and name.
func (c *Catalog) Component(kind components.Kind, name string) (*components.Metadata, bool) {
	meta, ok := c.components[kind.Plural()+"."+name]
	return meta, ok
}

// Len returns the number of component records.
func (c *Catalog) Len() int {
	return len(c.components)
}

// Resolve performs a dotted-path lookup against the catalog. Recognized
// namespaces:
//
//	services.<name>                                       -> service display name
//	services.<name>.url                                   -> service url
//	urls.<name>                                           -> url
//	components.<kind>.<name>                              -> *components.Metadata
//	components.<kind>.<name>.output.metrics.<metric>      -> *components.MetricSpec
//
// It is used by the validator for referential integrity and by downstream
// renderers.
func (c *Catalog) Resolve(path string) (interface{}, error) {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "services", "urls":
		if value, ok := c.registry[path]; ok {
			return value, nil
		}
	case "components":
		if len(parts) < 3 {
			break
		}
		meta, ok := c.components[parts[1]+"."+parts[2]]
		if !ok {
			break
		}
		rest := parts[3:]
		if len(rest) == 0 {
			return meta, nil
		}
		if len(rest) == 3 && rest[0] == "output" && rest[1] == "metrics" && meta.Output != nil {
			if spec, ok := meta.Output.Metrics[rest[2]]; ok {
				return spec, nil
			}
		}
	}
	return nil, &NotFoundError{Path: path}
}
