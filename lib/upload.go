package lib

import (
	"buysell_server/structs"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ErrFileTooLarge is returned when a single uploaded file exceeds the limit.
var ErrFileTooLarge = errors.New("uploaded file too large")

// ErrTooManyFiles is returned when more files are uploaded than allowed.
var ErrTooManyFiles = errors.New("too many uploaded files")

// ReadUploadedFiles reads every file part under field into memory. Parts
// without content are skipped. The content type falls back to sniffing the
// first bytes when the client did not send one.
func ReadUploadedFiles(form *multipart.Form, field string, maxFiles int, maxFileBytes int64) ([]*structs.UploadedFile, error) {
	if form == nil {
		return nil, nil
	}

	headers := form.File[field]
	if maxFiles > 0 && len(headers) > maxFiles {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyFiles, len(headers), maxFiles)
	}

	files := make([]*structs.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		if fh == nil || fh.Size == 0 {
			continue
		}
		if maxFileBytes > 0 && fh.Size > maxFileBytes {
			return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, fh.Filename)
		}

		file, err := readFileHeader(fh, field)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}

func readFileHeader(fh *multipart.FileHeader, field string) (*structs.UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %q: %w", fh.Filename, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &structs.UploadedFile{
		Name:             field,
		OriginalFileName: fh.Filename,
		ContentType:      contentType,
		Size:             int64(len(data)),
		Bytes:            data,
	}, nil
}
