package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// bindRequest, messageID 1, version 3, empty name, empty simple password.
	bindHex = "30 0c 02 01 01 60 07 02 01 03 04 00 80 00"
	// present filter on objectClass.
	presentHex = "87:0b:6f:62:6a:65:63:74:43:6c:61:73:73"
	// SEQUENCE claiming five content octets with three present.
	truncatedHex = "3005020101"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	argv := append([]string{"berx", "--no-color", "--log-level", "error"}, args...)
	code := run(argv, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_NoArgs(t *testing.T) {
	code, out, _ := execute(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "berx decodes")
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, errOut := execute(t, "frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown command")
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "berx version "+version)

	code, out, _ = execute(t, "version", "--short")
	require.Equal(t, 0, code)
	assert.Equal(t, version+"\n", out)
}

func TestDecode_Tree(t *testing.T) {
	code, out, _ := execute(t, "decode", "--hex", bindHex)
	require.Equal(t, 0, code)

	assert.Contains(t, out, "ldap: 14 bytes, ok")
	assert.Contains(t, out, "ldap.LDAPMessage")
	assert.Contains(t, out, "bindRequest")
	assert.Contains(t, out, "version (INTEGER) = 3")
	assert.Contains(t, out, "messageID=1")
	assert.NotContains(t, out, "anomalies:")
}

func TestDecode_JSON(t *testing.T) {
	code, out, _ := execute(t, "decode", "--hex", bindHex, "--output", "json")
	require.Equal(t, 0, code)

	var doc struct {
		Protocol  string   `json:"protocol"`
		Consumed  int      `json:"consumed"`
		Status    string   `json:"status"`
		Malformed bool     `json:"malformed"`
		Summary   []string `json:"summary"`
		Root      struct {
			Name     string `json:"name"`
			Offset   int    `json:"offset"`
			Length   int    `json:"length"`
			Children []struct {
				Name  string `json:"name"`
				Value any    `json:"value"`
			} `json:"children"`
		} `json:"root"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "ldap", doc.Protocol)
	assert.Equal(t, 14, doc.Consumed)
	assert.Equal(t, "ok", doc.Status)
	assert.False(t, doc.Malformed)
	assert.Contains(t, doc.Summary, "messageID=1")
	assert.Equal(t, "ldap.LDAPMessage", doc.Root.Name)
	assert.Equal(t, 14, doc.Root.Length)
	require.NotEmpty(t, doc.Root.Children)
	assert.Equal(t, "messageID", doc.Root.Children[0].Name)
	assert.Equal(t, float64(1), doc.Root.Children[0].Value)
}

func TestDecode_Type(t *testing.T) {
	code, out, _ := execute(t, "decode", "--type", "ldap.Filter", "--hex", presentHex)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "ldap.Filter: 13 bytes, ok")
	assert.Contains(t, out, "objectClass")
}

func TestDecode_UnknownType(t *testing.T) {
	code, _, errOut := execute(t, "decode", "--type", "ldap.NoSuchType", "--hex", presentHex)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error:")
}

func TestDecode_Malformed(t *testing.T) {
	code, out, _ := execute(t, "decode", "--hex", truncatedHex)
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "malformed")
	assert.Contains(t, out, "InsufficientData")
}

func TestDecode_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bind.ber")
	data, err := parseHex(bindHex)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	code, out, _ := execute(t, "decode", "--file", path, "--protocol", "1.3.6.1.1.18")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "bindRequest")
}

func TestDecode_Offset(t *testing.T) {
	code, out, _ := execute(t, "decode", "--hex", "ffff"+"300c020101600702010304008000", "--offset", "2")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "[2+14]")
}

func TestDecode_InputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"decode"}},
		{"bad hex", []string{"decode", "--hex", "zz"}},
		{"hex and file", []string{"decode", "--hex", "00", "--file", "x"}},
		{"missing file", []string{"decode", "--file", filepath.Join(os.TempDir(), "berx-missing.ber")}},
		{"bad offset", []string{"decode", "--hex", "0500", "--offset", "9"}},
		{"bad output", []string{"decode", "--hex", "0500", "--output", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := execute(t, tt.args...)
			assert.Equal(t, 1, code)
		})
	}
}

func TestDecode_Metrics(t *testing.T) {
	code, out, _ := execute(t, "decode", "--hex", bindHex, "--metrics")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "metrics:")
	assert.Contains(t, out, "berx_decodes_total")
	assert.Contains(t, out, "protocol=ldap,status=ok")
}

func TestProtocols(t *testing.T) {
	code, out, _ := execute(t, "protocols")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "ldap")
	assert.Contains(t, out, "1.3.6.1.1.18")
	assert.Contains(t, out, "dap")
	assert.Contains(t, out, "2.5.3.1")
}

func TestProtocols_Detail(t *testing.T) {
	code, out, _ := execute(t, "protocols", "dap")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "read")
	assert.Contains(t, out, "nameError")

	code, _, _ = execute(t, "protocols", "x400")
	assert.Equal(t, 1, code)
}

func TestTypes(t *testing.T) {
	code, out, _ := execute(t, "types", "--prefix", "ldap.")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "ldap.Filter")
	assert.NotContains(t, out, "  dap.Filter\n")
}

func TestConfig_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "berx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("decoder:\n  maxDepth: 0\n"), 0o600))

	code, _, errOut := execute(t, "--config", path, "protocols")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid config")

	code, _, errOut = execute(t, "--config", path, "config", "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "decoder.maxDepth")
}

func TestConfig_Validate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "berx.toml")
	require.NoError(t, os.WriteFile(path, []byte("[decoder]\nmaxDepth = 32\ntrailingData = \"strict\"\n"), 0o600))

	code, out, _ := execute(t, "--config", path, "config", "validate")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Configuration is valid")

	code, _, _ = execute(t, "config", "validate")
	assert.Equal(t, 1, code)
}

func TestConfig_InitAndShow(t *testing.T) {
	code, out, _ := execute(t, "config", "init")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "maxDepth: 64")
	assert.Contains(t, out, "trailingData: warn")

	code, out, _ = execute(t, "config", "init", "--format", "toml")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "[decoder]")

	code, out, _ = execute(t, "config", "show", "--format", "json")
	require.Equal(t, 0, code)
	assert.Contains(t, out, `"level": "error"`)
}

func TestParseHex(t *testing.T) {
	data, err := parseHex("0x30 00")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x00}, data)

	_, err = parseHex("123")
	assert.Error(t, err)
}
