package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
)

// sniffedFile opens an uploaded part and detects its content type from the
// first 512 bytes. The returned reader replays those bytes.
func sniffedFile(fh *multipart.FileHeader) (contentType string, r io.Reader, closer io.Closer, err error) {
	file, err := fh.Open()
	if err != nil {
		return "", nil, nil, err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		_ = file.Close()
		return "", nil, nil, err
	}
	head = head[:n]

	return http.DetectContentType(head), &readJoin{a: bytes.NewReader(head), b: file}, file, nil
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
