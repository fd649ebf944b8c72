package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"slices"
	"strings"

	embedded "github.com/jonathan/resume-matcher/schemas"

	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Multipart field names expected by the service
const (
	FileField  = "file"
	PairsField = "companies_roles"
)

// Options configures what a request carries.
type Options struct {
	// Accepts lists allowed lower-cased extensions; empty allows any.
	Accepts []string
	// IncludePairs adds the companies_roles field.
	IncludePairs bool
}

// OptionsFor returns the build options for a flow.
func OptionsFor(f flow.Strategy) Options {
	return Options{
		Accepts:      f.Accepts(),
		IncludePairs: f.NeedsPairs(),
	}
}

// UploadRequest is one immutable submission. Build copies its inputs.
type UploadRequest struct {
	file         types.FileHandle
	pairs        []types.CompanyRoleEntry
	pairsJSON    string
	includePairs bool
}

// Build assembles a request from a selected file and validated pairs.
// A missing file is reported before anything about the pairs.
func Build(file *types.FileHandle, pairs []types.CompanyRoleEntry, opts Options) (*UploadRequest, error) {
	if file == nil {
		return nil, ErrNoFileSelected
	}

	if len(opts.Accepts) > 0 && !slices.Contains(opts.Accepts, file.Ext()) {
		return nil, &UnsupportedFileError{Name: file.Name, Accepted: opts.Accepts}
	}

	req := &UploadRequest{
		file: types.FileHandle{
			Name:        file.Name,
			ContentType: file.ContentType,
			Data:        bytes.Clone(file.Data),
		},
		includePairs: opts.IncludePairs,
	}

	if opts.IncludePairs {
		pairsJSON, err := MarshalPairs(pairs)
		if err != nil {
			return nil, err
		}
		if err := schemas.ValidateBytes(embedded.CompaniesRoles, []byte(pairsJSON)); err != nil {
			return nil, &BuildError{Message: "companies_roles does not match schema", Cause: err}
		}
		req.pairs = slices.Clone(pairs)
		req.pairsJSON = pairsJSON
	}

	return req, nil
}

// MarshalPairs serializes pairs as a compact JSON array without HTML escaping,
// so names containing &, < or > are sent verbatim.
func MarshalPairs(pairs []types.CompanyRoleEntry) (string, error) {
	if pairs == nil {
		pairs = []types.CompanyRoleEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(pairs); err != nil {
		return "", &BuildError{Message: "failed to marshal companies_roles", Cause: err}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// File returns the attached file.
func (r *UploadRequest) File() types.FileHandle {
	return r.file
}

// Pairs returns a copy of the requested pairs.
func (r *UploadRequest) Pairs() []types.CompanyRoleEntry {
	return slices.Clone(r.pairs)
}

// PairsJSON returns the companies_roles field value, empty when not sent.
func (r *UploadRequest) PairsJSON() string {
	return r.pairsJSON
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode renders the multipart/form-data body and returns it with its
// Content-Type header value.
func (r *UploadRequest) Encode() ([]byte, string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FileField, quoteEscaper.Replace(r.file.Name)))
	contentType := r.file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", &BuildError{Message: "failed to create file part", Cause: err}
	}
	if _, err := part.Write(r.file.Data); err != nil {
		return nil, "", &BuildError{Message: "failed to write file part", Cause: err}
	}

	if r.includePairs {
		if err := w.WriteField(PairsField, r.pairsJSON); err != nil {
			return nil, "", &BuildError{Message: "failed to write companies_roles field", Cause: err}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", &BuildError{Message: "failed to close multipart body", Cause: err}
	}

	return body.Bytes(), w.FormDataContentType(), nil
}
