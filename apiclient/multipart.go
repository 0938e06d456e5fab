package apiclient

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"

	"storefront-admin/variantform"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type formWriter struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newFormWriter() *formWriter {
	fw := &formWriter{}
	fw.w = multipart.NewWriter(&fw.buf)
	return fw
}

func (fw *formWriter) field(name, value string) {
	if fw.err != nil {
		return
	}
	fw.err = fw.w.WriteField(name, value)
}

func (fw *formWriter) file(name string, f *variantform.File) {
	if fw.err != nil || f == nil {
		return
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(name), quoteEscaper.Replace(f.Filename)))
	h.Set("Content-Type", contentType)

	part, err := fw.w.CreatePart(h)
	if err != nil {
		fw.err = err
		return
	}
	_, fw.err = part.Write(f.Data)
}

func (fw *formWriter) close() (*bytes.Buffer, string, error) {
	if fw.err != nil {
		return nil, "", fmt.Errorf("failed to build multipart body: %w", fw.err)
	}
	if err := fw.w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	return &fw.buf, fw.w.FormDataContentType(), nil
}

// productForm encodes a serialized draft: scalar fields, the banner keep
// marker when no new banner is sent, the variants JSON, then the files in
// payload order.
func productForm(p *variantform.Payload) (*bytes.Buffer, string, error) {
	fw := newFormWriter()
	for _, f := range p.Fields {
		fw.field(f.Name, f.Value)
	}
	if p.BannerKeep != "" {
		fw.field(variantform.FieldBannerKeep, p.BannerKeep)
	}

	variants, err := p.VariantsJSON()
	if err != nil {
		return nil, "", err
	}
	fw.field(variantform.FieldVariants, variants)

	for _, a := range p.Files {
		fw.file(a.FieldName, a.File)
	}
	return fw.close()
}
