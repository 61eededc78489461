//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

// ContentFile is the file showcase reads from its working directory
const ContentFile = ".showcase.toml"

// smallContent is a page with one three-panel slider and no auto-advance so
// the visible panel only changes when a test asks it to
const smallContent = `version = 1

[ui]
compact_threshold = 100
resize_debounce_ms = 20

[hero]
line1 = "A space where"
line2 = "life is amplified"

[overview]
heading = "Overview"

[[sliders]]
id = "district"
title = "The District"
show_indicator = true
auto_advance_ms = 0
height = 8

[[sliders.panels]]
title = "Retail Panel"

[[sliders.panels]]
title = "Offices Panel"

[[sliders.panels]]
title = "Hotel Panel"
`

// CreateTestWorkspace creates a temporary working directory for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteContent writes the content file into the workspace
func (tf *TUITestFramework) WriteContent(content string) (string, error) {
	path := filepath.Join(tf.workspace, ContentFile)
	return path, os.WriteFile(path, []byte(content), 0644)
}
