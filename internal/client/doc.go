// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless client application runtime.
//
// It wires local storage, the content API adapter, the client services and
// the background sync worker into a single process lifecycle.
package client
