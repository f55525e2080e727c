// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client runs the cyber-aware terminal client.
//
// It ties the session event loop, the background workers and the terminal UI
// into a single process lifecycle, and closes local storage on exit.
package client
