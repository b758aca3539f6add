package command

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shoenig/test/must"
)

func TestLoadEnv_FileOverridesProcess(t *testing.T) {
	t.Setenv("NODE_GRPC_PORT", "5000")
	t.Setenv("FLEET_LOG_LEVEL", "DEBUG")

	path := filepath.Join(t.TempDir(), "fleet.env")
	must.NoError(t, os.WriteFile(path, []byte("NODE_GRPC_PORT=62050\nFLEET_DATA_DIR=/opt/fleet\n"), 0o600))

	env, err := loadEnv(path)
	must.NoError(t, err)
	must.Eq(t, "62050", env["NODE_GRPC_PORT"])
	must.Eq(t, "/opt/fleet", env["FLEET_DATA_DIR"])
	must.Eq(t, "DEBUG", env["FLEET_LOG_LEVEL"])
}

func TestLoadEnv_MissingFile(t *testing.T) {
	_, err := loadEnv(filepath.Join(t.TempDir(), "nope.env"))
	must.Error(t, err)
}

func TestEnvDuration(t *testing.T) {
	cases := []struct {
		name   string
		value  string
		exp    time.Duration
		expErr bool
	}{
		{name: "unset", value: "", exp: 30 * time.Second},
		{name: "go duration", value: "2m", exp: 2 * time.Minute},
		{name: "bare seconds", value: "45", exp: 45 * time.Second},
		{name: "garbage", value: "soon", expErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := map[string]string{}
			if tc.value != "" {
				env["TASKS_RECORD_USER_USAGES_INTERVAL"] = tc.value
			}
			d, err := envDuration(env, "TASKS_RECORD_USER_USAGES_INTERVAL", 30*time.Second)
			if tc.expErr {
				must.Error(t, err)
				return
			}
			must.NoError(t, err)
			must.Eq(t, tc.exp, d)
		})
	}
}

func TestParseBackendSpecs(t *testing.T) {
	defs, err := parseBackendSpecs([]string{
		"xray,xray,/usr/bin/xray,/etc/xray/config.json,1.8.4",
		"hy2,hysteria2,/usr/bin/hysteria,/etc/hysteria/server.yaml",
	})
	must.NoError(t, err)
	must.Len(t, 2, defs)
	must.Eq(t, "xray", defs[0].Name)
	must.Eq(t, "1.8.4", defs[0].Version)
	must.Eq(t, "hysteria2", defs[1].Type)
	must.Eq(t, "", defs[1].Version)

	_, err = parseBackendSpecs([]string{"just-a-name"})
	must.Error(t, err)

	_, err = parseBackendSpecs([]string{"name,type,,config"})
	must.Error(t, err)
}
