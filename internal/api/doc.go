// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the typed HTTP client for the AI-chat service.
//
// The client covers the full remote contract: chat create/continue, chat and
// document listing and retrieval, multipart document upload, keyword and RAG
// search, and user management. All failures are reported as *ClientError with
// a machine-checkable type; non-2xx responses carry the opaque HTTP status
// and are never interpreted beyond it.
//
// Requests are rate limited client-side and tagged with an X-Request-ID
// header for correlation in the debug log.
package api
