// Package form reads write-request bodies that arrive either as JSON or as a
// multipart form carrying an optional image.
package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/usecase/upload"
)

// ImageField is the multipart field that carries an uploaded image.
const ImageField = "imageFile"

// DefaultMaxMemory is the multipart size kept in memory before spilling to disk.
const DefaultMaxMemory = 8 << 20

// ErrMalformed is returned for bodies that cannot be decoded.
var ErrMalformed = errors.New("invalid request body")

// Values is a decoded body.
type Values struct {
	fields map[string]string
	// File is the attached image, nil when none was sent.
	File *upload.File

	closeFn func()
}

// Parse decodes r's body by content type. JSON objects and urlencoded or
// multipart forms are accepted. Close must be called once the values are consumed.
func Parse(r *http.Request, maxMemory int64) (*Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		return parseMultipart(r, maxMemory)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return fromForm(r.PostForm), nil
	default:
		return parseJSON(r)
	}
}

func parseMultipart(r *http.Request, maxMemory int64) (*Values, error) {
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMemory
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	v := fromForm(r.MultipartForm.Value)
	form := r.MultipartForm

	file, header, err := r.FormFile(ImageField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		v.closeFn = func() { _ = form.RemoveAll() }
	case err != nil:
		_ = form.RemoveAll()
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	default:
		v.File = fileFrom(file, header)
		v.closeFn = func() {
			_ = file.Close()
			_ = form.RemoveAll()
		}
	}
	return v, nil
}

func fileFrom(file multipart.File, header *multipart.FileHeader) *upload.File {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &upload.File{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}
}

func fromForm(form map[string][]string) *Values {
	v := &Values{fields: make(map[string]string, len(form))}
	for key, vals := range form {
		if len(vals) > 0 {
			v.fields[key] = vals[0]
		}
	}
	return v
}

func parseJSON(r *http.Request) (*Values, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	v := &Values{fields: make(map[string]string, len(raw))}
	for key, val := range raw {
		switch val := val.(type) {
		case nil:
		case string:
			v.fields[key] = val
		case json.Number:
			v.fields[key] = val.String()
		case bool:
			v.fields[key] = strconv.FormatBool(val)
		default:
			var buf bytes.Buffer
			_ = json.NewEncoder(&buf).Encode(val)
			v.fields[key] = strings.TrimSpace(buf.String())
		}
	}
	return v, nil
}

// Close releases the uploaded file and any temporary files.
func (v *Values) Close() {
	if v != nil && v.closeFn != nil {
		v.closeFn()
		v.closeFn = nil
	}
}

// Get returns the value of key, or "" when absent.
func (v *Values) Get(key string) string {
	return v.fields[key]
}

// Lookup returns the value of key and whether it was sent.
func (v *Values) Lookup(key string) (string, bool) {
	s, ok := v.fields[key]
	return s, ok
}

// Optional returns a pointer to the value of key, nil when it was not sent.
func (v *Values) Optional(key string) *string {
	s, ok := v.fields[key]
	if !ok {
		return nil
	}
	return &s
}

// Int64 parses key as an integer. A missing or blank key yields 0 and no
// error; anything non-integral yields a ValidationError for key.
func (v *Values) Int64(key string) (int64, error) {
	s := strings.TrimSpace(v.fields[key])
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &entity.ValidationError{Field: key, Message: key + " must be a positive integer"}
	}
	return n, nil
}
