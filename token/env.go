package token

import (
	stderrors "errors"
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/pdsmelt"
	"github.com/wippyai/pdsmelt/errors"
)

// ErrAlreadyInitialized is returned by Configure once a game's table is built.
var ErrAlreadyInitialized = stderrors.New("token table already initialized")

type lazyTable struct {
	once  sync.Once
	path  string
	set   bool
	built bool
	table *Table
}

var (
	mu     sync.Mutex
	tables = map[pdsmelt.Game]*lazyTable{}
)

func slot(game pdsmelt.Game) *lazyTable {
	mu.Lock()
	defer mu.Unlock()
	lt, ok := tables[game]
	if !ok {
		lt = &lazyTable{}
		tables[game] = lt
	}
	return lt
}

// For returns the process-wide resolver for game, building it on first use.
func For(game pdsmelt.Game) Resolver {
	lt := slot(game)
	lt.once.Do(func() {
		mu.Lock()
		path := lt.path
		if !lt.set {
			path = os.Getenv(game.TokenEnv())
		}
		lt.built = true
		mu.Unlock()

		lt.table = build(game, path)
	})
	return lt.table
}

func build(game pdsmelt.Game, path string) *Table {
	log := Logger().With(zap.Stringer("game", game))
	if path == "" {
		log.Debug("no token table configured", zap.String("env", game.TokenEnv()))
		return Empty
	}

	table, err := Load(path)
	if err != nil {
		log.Warn("token table unavailable, all tokens unresolved", zap.String("path", path), zap.Error(err))
		return Empty
	}

	log.Debug("token table loaded", zap.String("path", path), zap.Int("tokens", table.Len()))
	return table
}

// Configure sets table paths before first use, overriding the environment.
// Games whose table is already built are left alone and reported with
// ErrAlreadyInitialized.
func Configure(paths map[pdsmelt.Game]string) error {
	var failed error
	for game, path := range paths {
		lt := slot(game)
		mu.Lock()
		if lt.built {
			failed = errors.Wrap(errors.PhaseTokens, errors.KindInvalidInput, ErrAlreadyInitialized, game.String())
		} else {
			lt.path = path
			lt.set = true
		}
		mu.Unlock()
	}
	return failed
}

type config struct {
	Tokens map[string]string `yaml:"tokens"`
}

// ParseConfig reads a YAML document of the form
//
//	tokens:
//	  eu4: /data/eu4.txt
//	  ck3: /data/ck3.yaml
func ParseConfig(data []byte) (map[pdsmelt.Game]string, error) {
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseTokens, errors.KindInvalidData, err, "decode token config")
	}

	paths := make(map[pdsmelt.Game]string, len(cfg.Tokens))
	for name, path := range cfg.Tokens {
		game, ok := pdsmelt.ParseGame(name)
		if !ok {
			return nil, errors.NotFound(errors.PhaseTokens, "game", name)
		}
		paths[game] = path
	}
	return paths, nil
}
