package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"
)

func init() {
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lshortfile)
	gin.SetMode(gin.TestMode)
}

func parsePayload(p interface{}) *bytes.Buffer {
	data, _ := json.Marshal(p)
	return bytes.NewBuffer(data)
}

// fakeStorage records calls and fails on demand.
type fakeStorage struct {
	uploadErr error
	deleteErr error
	uploaded  []string
	deleted   []string
}

func (f *fakeStorage) UploadImage(_ context.Context, _ io.Reader, objectPath string) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	storedPath := "mm-files/" + strings.TrimSuffix(objectPath, ".webp")
	f.uploaded = append(f.uploaded, storedPath)
	return "https://cdn.example.com/" + storedPath + ".webp", storedPath, nil
}

func (f *fakeStorage) UploadFile(ctx context.Context, r io.Reader, objectPath string) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	storedPath := "mm-files/" + objectPath
	f.uploaded = append(f.uploaded, storedPath)
	return "https://cdn.example.com/" + storedPath, storedPath, nil
}

func (f *fakeStorage) Delete(_ context.Context, storedPath string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, storedPath)
	return nil
}

func (f *fakeStorage) PathFromURL(publicURL string) string {
	idx := strings.Index(publicURL, "mm-files/")
	if idx < 0 {
		return ""
	}
	path := publicURL[idx:]
	if dot := strings.LastIndex(path, "."); dot >= 0 {
		path = path[:dot]
	}
	return path
}

type fakeCaptcha struct {
	ok  bool
	err error
}

func (f *fakeCaptcha) Verify(context.Context, string) (bool, error) {
	return f.ok, f.err
}

var errBoom = errors.New("boom")

func multipartBody(fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	if fileField != "" {
		part, _ := writer.CreateFormFile(fileField, fileName)
		_, _ = part.Write(fileContent)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}
