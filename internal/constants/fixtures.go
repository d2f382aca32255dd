package constants

// builtinFixtures is the fixed set of framework-injected dependency names
// that must never be shown to the user as if they were test-declared
// collaborators. The set is fully enumerated; adapters do not extend it.
//
//nolint:gochecknoglobals // Package-level set shared by classification and display
var builtinFixtures = map[string]struct{}{
	"request":                   {},
	"pytestconfig":              {},
	"tmp_path":                  {},
	"tmp_path_factory":          {},
	"capsys":                    {},
	"capfd":                     {},
	"capsysbinary":              {},
	"capfdbinary":               {},
	"caplog":                    {},
	"monkeypatch":               {},
	"recwarn":                   {},
	"doctest_namespace":         {},
	"cache":                     {},
	"record_property":           {},
	"record_testsuite_property": {},
	"record_xml_attribute":      {},
	"pytester":                  {},
	"testdir":                   {},
}

// IsBuiltinFixture reports whether name belongs to the runtime-infrastructure
// denylist hidden from display.
func IsBuiltinFixture(name string) bool {
	_, ok := builtinFixtures[name]
	return ok
}
