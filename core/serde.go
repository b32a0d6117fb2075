package core

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/bndr/gotabulate"
	"github.com/google/go-querystring/query"
)

const (
	customRawKey = "@raw" // used to store non-object JSON values in Record
)

var empty = struct{}{}

// printableAttrs are shown as individual table rows; everything else is folded into one JSON cell.
var printableAttrs = map[string]struct{}{
	"id":            empty,
	"name":          empty,
	"title":         empty,
	"owner_org":     empty,
	"message":       empty,
	"resource_url":  empty,
	"resource_s3":   empty,
	"kafka_topic":   empty,
	"kafka_host":    empty,
	"kafka_port":    empty,
	"service_url":   empty,
	"url":           empty,
	"format":        empty,
	"access_token":  empty,
	"username":      empty,
	"email":         empty,
	"dataset_name":  empty,
	"dataset_title": empty,
}

type FillFunc func(Record, any) error

var fillFunc FillFunc = func(r Record, container any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return FlexibleUnmarshal(data, container)
}

//  ######################################################
//              FUNCTION PARAMS
//  ######################################################

// Params represents a generic set of key-value parameters,
// used for constructing query strings or request bodies.
type Params map[string]any

// FileData represents a file to be uploaded in multipart form data
type FileData struct {
	Filename    string
	Content     []byte
	ContentType string
}

// ToQuery serializes the Params into a URL-encoded query string.
// Slice values become repeated keys; nil values are skipped.
func (pr *Params) ToQuery() (string, error) {
	values, err := paramsToValues(*pr)
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// ToBody serializes the Params into a JSON-encoded io.Reader,
// suitable for use as the body of an HTTP POST, PUT, or PATCH request.
func (pr *Params) ToBody() (io.Reader, error) {
	buffer, err := json.Marshal(*pr)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(buffer), nil
}

// ToForm serializes the Params as application/x-www-form-urlencoded.
func (pr *Params) ToForm() (io.Reader, error) {
	values, err := paramsToValues(*pr)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(values.Encode()), nil
}

// MultipartFormData represents the result of ToMultipartFormData()
type MultipartFormData struct {
	Body        io.Reader
	ContentType string
}

// ToMultipartFormData serializes the Params into multipart/form-data format.
// Files should be provided as FileData values in the Params map.
// Keys are written in sorted order so the payload is deterministic.
func (pr *Params) ToMultipartFormData() (*MultipartFormData, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, key := range pr.Keys() {
		switch v := (*pr)[key].(type) {
		case FileData:
			part, err := createFilePart(writer, key, v)
			if err != nil {
				return nil, fmt.Errorf("failed to create form file for %s: %w", key, err)
			}
			if _, err := part.Write(v.Content); err != nil {
				return nil, fmt.Errorf("failed to write file content for %s: %w", key, err)
			}
		case []byte:
			part, err := writer.CreateFormFile(key, key)
			if err != nil {
				return nil, fmt.Errorf("failed to create form file for %s: %w", key, err)
			}
			if _, err := part.Write(v); err != nil {
				return nil, fmt.Errorf("failed to write byte content for %s: %w", key, err)
			}
		default:
			if err := writer.WriteField(key, fmt.Sprintf("%v", v)); err != nil {
				return nil, fmt.Errorf("failed to write field %s: %w", key, err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return &MultipartFormData{
		Body:        &body,
		ContentType: writer.FormDataContentType(),
	}, nil
}

func createFilePart(writer *multipart.Writer, field string, file FileData) (io.Writer, error) {
	if file.ContentType == "" {
		return writer.CreateFormFile(field, file.Filename)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Filename))
	h.Set(HeaderContentType, file.ContentType)
	return writer.CreatePart(h)
}

// Keys returns the parameter names in sorted order.
func (pr *Params) Keys() []string {
	keys := make([]string, 0, len(*pr))
	for k := range *pr {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Update merges another Params map into the original Params.
// Existing keys are kept unless override is true.
func (pr *Params) Update(other Params, override bool) {
	for key, value := range other {
		if _, exists := (*pr)[key]; exists && !override {
			continue
		}
		(*pr)[key] = value
	}
}

// Without removes the specified keys from the Params map.
func (pr *Params) Without(keys ...string) {
	for _, key := range keys {
		delete(*pr, key)
	}
}

// FromStruct copies the fields of a struct into Params using json tags as keys.
// Fields tagged omitempty are skipped when empty, so absent optionals never reach the wire.
func (pr *Params) FromStruct(obj any) error {
	if obj == nil {
		return nil
	}
	v := reflect.Indirect(reflect.ValueOf(obj))
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("FromStruct: expected struct, got %T", obj)
	}
	for key, value := range structToMap(obj) {
		(*pr)[key] = value
	}
	return nil
}

// NewParamsFromStruct creates a new Params map from any struct, respecting json tags.
func NewParamsFromStruct(obj any) (Params, error) {
	params := make(Params)
	if obj == nil {
		return params, nil
	}
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr && val.IsNil() {
		return params, nil
	}
	err := params.FromStruct(obj)
	return params, err
}

// EncodeQuery turns a query description into an encoded query string.
// Accepted inputs are nil, Params, url.Values, or a struct tagged for go-querystring.
func EncodeQuery(q any) (string, error) {
	switch v := q.(type) {
	case nil:
		return "", nil
	case Params:
		return v.ToQuery()
	case url.Values:
		return v.Encode(), nil
	default:
		rv := reflect.ValueOf(q)
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return "", nil
		}
		values, err := query.Values(q)
		if err != nil {
			return "", fmt.Errorf("failed to encode query: %w", err)
		}
		return values.Encode(), nil
	}
}

func paramsToValues(params Params) (url.Values, error) {
	out := make(url.Values)
	for k, raw := range params {
		switch v := raw.(type) {
		case nil:
			continue
		case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			out.Set(k, fmt.Sprint(v))
		case Server:
			out.Set(k, v.String())
		case encoding.TextMarshaler:
			text, err := v.MarshalText()
			if err != nil {
				return nil, fmt.Errorf("can't marshal query param '%s': %w", k, err)
			}
			out.Set(k, string(text))
		default:
			ref := reflect.ValueOf(v)
			if ref.Kind() != reflect.Slice && ref.Kind() != reflect.Array {
				return nil, fmt.Errorf("can't marshal query param '%s' with type: %T", k, v)
			}
			for i := 0; i < ref.Len(); i++ {
				out.Add(k, fmt.Sprint(ref.Index(i).Interface()))
			}
		}
	}
	return out, nil
}

//  ######################################################
//              RETURN TYPES
//  ######################################################

// getPrintableAttrs returns a slice of keys to be printed from the Record
func getPrintableAttrs(r Record) []string {
	var attrs []string
	for key := range r {
		if _, ok := printableAttrs[key]; ok {
			attrs = append(attrs, key)
		}
	}
	sort.Strings(attrs)
	return attrs
}

// Renderable is an interface implemented by types that can render themselves
// into a human-readable string format, typically for CLI display or logging.
type Renderable interface {
	PrettyTable() string
	PrettyJson(indent ...string) string
}

// Filler is a generic interface for filling a struct or slice of structs.
type Filler interface {
	// Fill populates the given container with data from the implementing type.
	// The container can be a pointer to a struct (for Record),
	// or a pointer to a slice of structs (for RecordSet).
	Fill(container any) error
}

// DisplayableRecord combines rendering and data population.
type DisplayableRecord interface {
	Renderable
	Filler
}

// Record represents a single JSON object from an API response.
// When a response is empty, an empty Record{} is returned.
type Record map[string]any

// RecordSet represents a list of Record objects.
type RecordSet []Record

// Fill populates the exported fields of the given struct pointer using values
// from the Record. Numbers arriving for string fields (and numeric strings for
// integer fields) are converted.
func (r Record) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a struct")
	}
	if val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("container must point to a struct")
	}
	return fillFunc(r, container)
}

// RecordID returns the "id" field as a string, or "" when absent.
func (r Record) RecordID() string {
	idVal, ok := r["id"]
	if !ok || idVal == nil {
		return ""
	}
	return convertToString(idVal)
}

// RecordName returns the "name" field as a string, or "" when absent.
func (r Record) RecordName() string {
	nameVal, ok := r["name"]
	if !ok || nameVal == nil {
		return ""
	}
	return fmt.Sprintf("%v", nameVal)
}

// Message returns the "message" field the API attaches to most mutations.
func (r Record) Message() string {
	msg, _ := r["message"].(string)
	return msg
}

// Raw returns the value of a non-object JSON response wrapped into a Record.
func (r Record) Raw() (any, bool) {
	v, ok := r[customRawKey]
	return v, ok
}

// PrettyTable prints a single Record as a table
func (r Record) PrettyTable() string {
	headers := []string{"attr", "value"}
	var rows [][]any
	if len(r) == 0 {
		return "<>"
	}
	for _, key := range getPrintableAttrs(r) {
		if val, ok := r[key]; ok && val != nil {
			rows = append(rows, []any{key, fmt.Sprintf("%v", val)})
		}
	}

	remainingAttrs := make(map[string]any)
	for key, value := range r {
		if _, ok := printableAttrs[key]; !ok && value != nil {
			remainingAttrs[key] = value
		}
	}
	if len(remainingAttrs) > 0 {
		remainingJSON, _ := json.Marshal(remainingAttrs)
		rows = append(rows, []any{"<<remaining attrs>>", string(remainingJSON)})
	}
	t := gotabulate.Create(rows)
	t.SetHeaders(headers)
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(85)
	return fmt.Sprintf("\n%s", t.Render("grid"))
}

// PrettyJson prints the Record as JSON, optionally indented
func (r Record) PrettyJson(indent ...string) string {
	return prettyJson(r, indent...)
}

func (r Record) Empty() bool {
	return len(r) == 0
}

func (r Record) String() string {
	return r.PrettyTable()
}

// Fill populates the provided container slice with data from the RecordSet.
// The container must be a non-nil pointer to a slice of structs (or of struct pointers).
func (rs RecordSet) Fill(container any) error {
	val := reflect.ValueOf(container)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("container must be a non-nil pointer to a slice")
	}

	sliceVal := val.Elem()
	if sliceVal.Kind() != reflect.Slice {
		return fmt.Errorf("container must point to a slice")
	}

	elemType := sliceVal.Type().Elem()
	isPtrElem := elemType.Kind() == reflect.Ptr

	targetType := elemType
	if isPtrElem {
		targetType = elemType.Elem()
	}
	if targetType.Kind() != reflect.Struct {
		return fmt.Errorf("slice element must be a struct or pointer to a struct")
	}

	for _, record := range rs {
		elemPtr := reflect.New(targetType)
		if err := record.Fill(elemPtr.Interface()); err != nil {
			return err
		}
		if isPtrElem {
			sliceVal.Set(reflect.Append(sliceVal, elemPtr))
		} else {
			sliceVal.Set(reflect.Append(sliceVal, elemPtr.Elem()))
		}
	}
	return nil
}

// PrettyTable prints the full RecordSet by rendering each individual Record
func (rs RecordSet) PrettyTable() string {
	if len(rs) == 0 {
		return "[]"
	}
	var out strings.Builder
	out.WriteString("[\n")
	for i, record := range rs {
		out.WriteString(record.PrettyTable())
		if i < len(rs)-1 {
			out.WriteString("\n\n")
		}
	}
	out.WriteString("\n]")
	return out.String()
}

func (rs RecordSet) Empty() bool {
	return len(rs) == 0
}

// PrettyJson prints the RecordSet as JSON, optionally indented
func (rs RecordSet) PrettyJson(indent ...string) string {
	return prettyJson(rs, indent...)
}

func prettyJson(v any, indent ...string) string {
	var (
		b   []byte
		err error
	)
	if len(indent) > 0 {
		b, err = json.MarshalIndent(v, "", indent[0])
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Sprintf("failed to marshal JSON: %v", err)
	}
	return string(b)
}

// decodeBody unmarshals a 2xx response body into T.
// An empty body yields the zero value of T. A bare JSON string decoded
// into a Record is kept under the @raw key.
func decodeBody[T any](body []byte) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return out, nil
	}
	if rec, ok := any(&out).(*Record); ok && trimmed[0] != '{' && trimmed[0] != 'n' {
		var raw any
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return out, err
		}
		*rec = Record{customRawKey: raw}
		return out, nil
	}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return out, err
	}
	return out, nil
}
