package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseStoreConn(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    StoreConn
		expectErr bool
	}{
		{name: "inmem", input: "inmem", expect: StoreConn{Kind: StoreMemory}},
		{name: "case insensitive", input: "INMEM", expect: StoreConn{Kind: StoreMemory}},
		{name: "none", input: "none", expect: StoreConn{Kind: StoreNone}},
		{name: "sqlite with dir", input: "sqlite:./data", expect: StoreConn{Kind: StoreSQLite, Dir: "./data"}},
		{name: "sqlite keeps colons in path", input: "sqlite:C:/data", expect: StoreConn{Kind: StoreSQLite, Dir: "C:/data"}},
		{name: "spaces around parts", input: " sqlite : data ", expect: StoreConn{Kind: StoreSQLite, Dir: "data"}},
		{name: "sqlite without dir", input: "sqlite", expectErr: true},
		{name: "sqlite with blank dir", input: "sqlite: ", expectErr: true},
		{name: "inmem with params", input: "inmem:foo", expectErr: true},
		{name: "none with colon", input: "none:", expectErr: true},
		{name: "unknown engine", input: "postgres:db", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseStoreConn(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}

			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.expect, actual)

			again, err := ParseStoreConn(actual.String())
			assert.NoError(err)
			assert.Equal(actual, again)
		})
	}
}

func Test_StoreConn_Open(t *testing.T) {
	t.Run("inmem", func(t *testing.T) {
		assert := assert.New(t)

		st, err := StoreConn{Kind: StoreMemory}.Open()
		if assert.NoError(err) {
			assert.NoError(st.Close())
		}
	})

	t.Run("sqlite makes its dir", func(t *testing.T) {
		assert := assert.New(t)

		dir := filepath.Join(t.TempDir(), "nested", "data")
		st, err := StoreConn{Kind: StoreSQLite, Dir: dir}.Open()
		if !assert.NoError(err) {
			return
		}
		defer st.Close()

		assert.DirExists(dir)
	})

	t.Run("none cannot be opened", func(t *testing.T) {
		conn := StoreConn{Kind: StoreNone}

		_, err := conn.Open()

		assert.False(t, conn.Enabled())
		assert.Error(t, err)
	})
}

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    func(assert *assert.Assertions, cfg Config)
		expectErr bool
	}{
		{
			name:  "empty",
			input: "",
			expect: func(assert *assert.Assertions, cfg Config) {
				assert.Equal(Config{}, cfg)
			},
		},
		{
			name: "all sections",
			input: `
[engine]
eliminate_backtracking = true

[output]
format = "table"
width = 60
show_sets = false

[store]
db = "sqlite:/tmp/gnorm"

[server]
listen = ":9000"
error_delay_ms = 250

[trace]
level = "Debug"
`,
			expect: func(assert *assert.Assertions, cfg Config) {
				assert.True(cfg.Engine.EliminateBacktracking)
				assert.Equal("table", cfg.Output.Format)
				assert.Equal(60, cfg.Output.Width)
				if assert.NotNil(cfg.Output.ShowSets) {
					assert.False(*cfg.Output.ShowSets)
				}
				assert.Equal("sqlite:/tmp/gnorm", cfg.Store.DB)
				assert.Equal(":9000", cfg.Server.Listen)
				assert.Equal(250, cfg.Server.ErrorDelayMillis)
				assert.Equal("Debug", cfg.Trace.Level)
			},
		},
		{
			name:      "unknown key",
			input:     "[engine]\nbacktrack = true\n",
			expectErr: true,
		},
		{
			name:      "bad toml",
			input:     "[engine\n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse([]byte(tc.input))
			if tc.expectErr {
				assert.Error(err)
				return
			}

			if !assert.NoError(err) {
				return
			}
			tc.expect(assert, actual)
		})
	}
}

func Test_Config_FillDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{}.FillDefaults()

	assert.NoError(cfg.Validate())
	assert.Equal(FormatText, cfg.Format())
	assert.Equal(100, cfg.Output.Width)
	assert.True(*cfg.Output.ShowSets)
	assert.False(cfg.DB().Enabled())
	assert.False(cfg.Options().EliminateBacktracking)
	assert.Zero(cfg.ErrorDelay())
}

func Test_Config_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{name: "bad format", modify: func(cfg *Config) { cfg.Output.Format = "yaml" }},
		{name: "too narrow", modify: func(cfg *Config) { cfg.Output.Width = 5 }},
		{name: "bad db", modify: func(cfg *Config) { cfg.Store.DB = "mongo" }},
		{name: "no listen address", modify: func(cfg *Config) { cfg.Server.Listen = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			cfg := Config{}.FillDefaults()
			tc.modify(&cfg)

			assert.Error(cfg.Validate())
		})
	}
}

func Test_Load(t *testing.T) {
	t.Run("missing default file is fine", func(t *testing.T) {
		assert := assert.New(t)

		wd, _ := os.Getwd()
		defer os.Chdir(wd)
		os.Chdir(t.TempDir())

		cfg, err := Load("")
		assert.NoError(err)
		assert.Equal(FormatText, cfg.Format())
	})

	t.Run("missing given file is an error", func(t *testing.T) {
		assert := assert.New(t)

		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(err)
	})

	t.Run("env overrides file", func(t *testing.T) {
		assert := assert.New(t)

		path := filepath.Join(t.TempDir(), "gnorm.toml")
		err := os.WriteFile(path, []byte("[store]\ndb = \"none\"\n[server]\nlisten = \":1\"\n"), 0644)
		if !assert.NoError(err) {
			return
		}
		t.Setenv(EnvDB, "inmem")

		cfg, err := Load(path)
		assert.NoError(err)
		assert.Equal(StoreMemory, cfg.DB().Kind)
		assert.Equal(":1", cfg.Server.Listen)
	})
}
