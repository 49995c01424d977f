// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries the linker-injected build metadata of the client binary.
type AppBuildInfo struct {
	BuildVersion string
	BuildDate    string
	BuildCommit  string
}
