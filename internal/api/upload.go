// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
)

// UploadDocument submits file bytes for ingestion (POST /documents, multipart
// field "file"). The service ingests and indexes synchronously from the
// caller's perspective: the call returns only once the document is queryable.
func (c *Client) UploadDocument(ctx context.Context, filename string, data []byte) (*UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build multipart body", Cause: err}
	}
	if _, err := part.Write(data); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build multipart body", Cause: err}
	}
	if err := w.Close(); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build multipart body", Cause: err}
	}

	var result UploadResponse
	if err := c.do(ctx, http.MethodPost, "/documents", nil, &buf, w.FormDataContentType(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
