package services

import (
	"bytes"
	"context"
	"io"
	"sync"
)

type fakeProvider struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (p *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	return p.reply, p.err
}

func (p *fakeProvider) Close() error { return nil }

func (p *fakeProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

type fakeUploader struct {
	objects map[string][]byte
	err     error
}

func newFakeUploader() *fakeUploader { return &fakeUploader{objects: map[string][]byte{}} }

func (u *fakeUploader) Upload(_ context.Context, objectName, _ string, r io.Reader, _ int64) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	u.objects[objectName] = buf.Bytes()
	return "/uploads/" + objectName, nil
}
