// Package testutil holds fixtures shared by dictus tests.
//
// Tests build their sources inline on an in-memory afero filesystem:
//
//	fs := testutil.NewFS(t, map[string]string{
//		"/src/english.toml": "[run]\n[[run.defs]]\ntext = \"move fast\"\n",
//	})
//
// Log output can be asserted with CaptureLogs.
package testutil
