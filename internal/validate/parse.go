package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/wcagaudit/internal/model"
)

// Parse validates raw and returns the report it describes.
// On failure no report is returned and the error wraps ErrMalformedResponse.
func Parse(raw []byte) (*model.Report, error) {
	body, err := unwrap(raw)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformedResponse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &PathError{Reason: "unexpected data after JSON document"}
	}

	root, err := asObject(doc, "")
	if err != nil {
		return nil, err
	}
	return parseReport(root)
}

// unwrap trims whitespace and an optional Markdown code fence.
func unwrap(raw []byte) ([]byte, error) {
	body := bytes.TrimSpace(raw)
	if len(body) == 0 {
		return nil, &PathError{Reason: "empty response"}
	}
	if !bytes.HasPrefix(body, []byte("```")) {
		return body, nil
	}

	nl := bytes.IndexByte(body, '\n')
	if nl < 0 {
		return nil, &PathError{Reason: "unterminated code fence"}
	}
	lang := strings.TrimSpace(string(body[3:nl]))
	if lang != "" && !strings.EqualFold(lang, "json") {
		return nil, &PathError{Reason: fmt.Sprintf("unexpected code fence language %q", lang)}
	}

	inner := bytes.TrimSpace(body[nl+1:])
	if !bytes.HasSuffix(inner, []byte("```")) {
		return nil, &PathError{Reason: "unterminated code fence"}
	}
	return bytes.TrimSpace(inner[:len(inner)-3]), nil
}

func parseReport(root map[string]any) (*model.Report, error) {
	var (
		r   model.Report
		err error
	)

	meta, err := objectField(root, "", "meta")
	if err != nil {
		return nil, err
	}
	if r.Meta, err = parseMeta(meta, "meta"); err != nil {
		return nil, err
	}

	if r.ExecutiveSummary, err = stringField(root, "", "executiveSummary"); err != nil {
		return nil, err
	}

	summary, err := objectField(root, "", "summary")
	if err != nil {
		return nil, err
	}
	if r.Summary.WCAG21, err = parseEdition(summary, "summary", "wcag21"); err != nil {
		return nil, err
	}
	if r.Summary.WCAG22, err = parseEdition(summary, "summary", "wcag22"); err != nil {
		return nil, err
	}

	principles, err := arrayField(root, "", "principles")
	if err != nil {
		return nil, err
	}
	r.Principles = make([]model.Principle, 0, len(principles))
	for i, item := range principles {
		path := index("principles", i)
		obj, err := asObject(item, path)
		if err != nil {
			return nil, err
		}
		p, err := parsePrinciple(obj, path)
		if err != nil {
			return nil, err
		}
		r.Principles = append(r.Principles, p)
	}

	return &r, nil
}

func parseMeta(obj map[string]any, path string) (model.Meta, error) {
	var (
		m   model.Meta
		err error
	)
	if m.Client, err = stringField(obj, path, "client"); err != nil {
		return m, err
	}
	if m.Website, err = stringField(obj, path, "website"); err != nil {
		return m, err
	}
	if m.Date, err = stringField(obj, path, "date"); err != nil {
		return m, err
	}
	if m.Version, err = stringField(obj, path, "version"); err != nil {
		return m, err
	}
	if m.Inspector, err = stringField(obj, path, "inspector"); err != nil {
		return m, err
	}
	return m, nil
}

func parseEdition(parent map[string]any, parentPath, key string) (model.Edition, error) {
	var e model.Edition

	obj, err := objectField(parent, parentPath, key)
	if err != nil {
		return e, err
	}
	path := join(parentPath, key)

	if e.LevelA, err = parseScore(obj, path, "levelA"); err != nil {
		return e, err
	}
	if e.LevelAA, err = parseScore(obj, path, "levelAA"); err != nil {
		return e, err
	}
	if e.Total, err = parseScore(obj, path, "total"); err != nil {
		return e, err
	}
	return e, nil
}

func parseScore(parent map[string]any, parentPath, key string) (model.Score, error) {
	var s model.Score

	obj, err := objectField(parent, parentPath, key)
	if err != nil {
		return s, err
	}
	path := join(parentPath, key)

	if s.Passed, err = intField(obj, path, "passed"); err != nil {
		return s, err
	}
	if s.Total, err = intField(obj, path, "total"); err != nil {
		return s, err
	}
	if s.Total < s.Passed {
		return s, pathErrorf(path, "total %d is less than passed %d", s.Total, s.Passed)
	}
	return s, nil
}

func parsePrinciple(obj map[string]any, path string) (model.Principle, error) {
	var (
		p   model.Principle
		err error
	)
	if p.ID, err = stringField(obj, path, "id"); err != nil {
		return p, err
	}
	if p.Name, err = stringField(obj, path, "name"); err != nil {
		return p, err
	}
	if p.Description, err = stringField(obj, path, "description"); err != nil {
		return p, err
	}

	criteria, err := arrayField(obj, path, "criteria")
	if err != nil {
		return p, err
	}
	p.Criteria = make([]model.Criterion, 0, len(criteria))
	for i, item := range criteria {
		cpath := index(join(path, "criteria"), i)
		cobj, err := asObject(item, cpath)
		if err != nil {
			return p, err
		}
		c, err := parseCriterion(cobj, cpath)
		if err != nil {
			return p, err
		}
		p.Criteria = append(p.Criteria, c)
	}
	return p, nil
}

func parseCriterion(obj map[string]any, path string) (model.Criterion, error) {
	var (
		c   model.Criterion
		err error
	)
	if c.ID, err = stringField(obj, path, "id"); err != nil {
		return c, err
	}
	if c.Name, err = stringField(obj, path, "name"); err != nil {
		return c, err
	}
	if c.Description, err = stringField(obj, path, "description"); err != nil {
		return c, err
	}

	level, err := stringField(obj, path, "level")
	if err != nil {
		return c, err
	}
	c.Level = model.Level(level)
	if !c.Level.Valid() {
		return c, pathErrorf(join(path, "level"), "%q is not one of A, AA", level)
	}

	result, err := stringField(obj, path, "result")
	if err != nil {
		return c, err
	}
	c.Result = model.Result(result)
	if !c.Result.Valid() {
		return c, pathErrorf(join(path, "result"), "%q is not one of %q, %q, %q",
			result, model.ResultPass, model.ResultFail, model.ResultNotApplicable)
	}

	findings, err := arrayField(obj, path, "findings")
	if err != nil {
		return c, err
	}
	if len(findings) > 0 && c.Result != model.ResultFail {
		return c, pathErrorf(join(path, "findings"), "findings present on a criterion with result %q", c.Result)
	}
	c.Findings = make([]model.Finding, 0, len(findings))
	for i, item := range findings {
		fpath := index(join(path, "findings"), i)
		fobj, err := asObject(item, fpath)
		if err != nil {
			return c, err
		}
		f, err := parseFinding(fobj, fpath)
		if err != nil {
			return c, err
		}
		c.Findings = append(c.Findings, f)
	}
	return c, nil
}

func parseFinding(obj map[string]any, path string) (model.Finding, error) {
	var (
		f   model.Finding
		err error
	)
	if f.Description, err = stringField(obj, path, "description"); err != nil {
		return f, err
	}
	if f.Location, err = stringField(obj, path, "location"); err != nil {
		return f, err
	}
	if f.TechnicalDetails, err = stringField(obj, path, "technicalDetails"); err != nil {
		return f, err
	}
	if f.Solution, err = stringField(obj, path, "solution"); err != nil {
		return f, err
	}
	return f, nil
}

// field returns the value of key, failing when it is absent or null.
func field(obj map[string]any, parentPath, key string) (any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, pathErrorf(join(parentPath, key), "required field is missing")
	}
	if v == nil {
		return nil, pathErrorf(join(parentPath, key), "required field is null")
	}
	return v, nil
}

func stringField(obj map[string]any, parentPath, key string) (string, error) {
	v, err := field(obj, parentPath, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", pathErrorf(join(parentPath, key), "expected string, got %s", kind(v))
	}
	return s, nil
}

func intField(obj map[string]any, parentPath, key string) (int, error) {
	path := join(parentPath, key)

	v, err := field(obj, parentPath, key)
	if err != nil {
		return 0, err
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, pathErrorf(path, "expected integer, got %s", kind(v))
	}
	n, err := strconv.Atoi(num.String())
	if err != nil {
		return 0, pathErrorf(path, "expected integer, got %s", num)
	}
	if n < 0 {
		return 0, pathErrorf(path, "must not be negative, got %d", n)
	}
	return n, nil
}

func objectField(obj map[string]any, parentPath, key string) (map[string]any, error) {
	v, err := field(obj, parentPath, key)
	if err != nil {
		return nil, err
	}
	return asObject(v, join(parentPath, key))
}

func arrayField(obj map[string]any, parentPath, key string) ([]any, error) {
	v, err := field(obj, parentPath, key)
	if err != nil {
		return nil, err
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, pathErrorf(join(parentPath, key), "expected array, got %s", kind(v))
	}
	return arr, nil
}

func asObject(v any, path string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, pathErrorf(path, "expected object, got %s", kind(v))
	}
	return obj, nil
}

// kind names the JSON kind of a decoded value.
func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
