package script

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Shopify/go-lua"

	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/resource"
	"github.com/talgya/hexworks/internal/world"
)

// ErrNotLoaded is returned by Call for a function that was never loaded.
var ErrNotLoaded = errors.New("function not loaded")

const (
	engineTableName = "Engine"
	hostKey         = "hexworks.host"
	functionPrefix  = "hexworks.fn."
)

// Check compiles source without running it. It matches the signature of
// resource.Config.CheckFunction.
func Check(name, source string) error {
	state := lua.NewState()
	if err := lua.LoadBuffer(state, source, "@"+name, ""); err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	return nil
}

// Runtime holds one Lua state with the engine bindings installed. A Runtime
// is not safe for concurrent use.
type Runtime struct {
	state  *lua.State
	host   Host
	loaded map[ident.ID]bool
}

// NewRuntime creates a Lua state bound to host.
func NewRuntime(host Host) *Runtime {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerCoordType(state)

	state.PushUserData(host)
	state.SetField(lua.RegistryIndex, hostKey)

	state.NewTable()
	lua.SetFunctions(state, engineFunctions, 0)
	state.SetGlobal(engineTableName)

	return &Runtime{state: state, host: host, loaded: make(map[ident.ID]bool)}
}

// Load runs a function chunk. The chunk must return the Lua function that is
// later invoked by Call.
func (rt *Runtime) Load(f resource.Function) error {
	name := rt.host.Name(f.ID).String()
	top := rt.state.Top()
	defer rt.state.SetTop(top)

	if err := lua.LoadBuffer(rt.state, f.Source, "@"+name, ""); err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	if err := rt.state.ProtectedCall(0, 1, 0); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	if !rt.state.IsFunction(-1) {
		return fmt.Errorf("run %s: chunk must return a function", name)
	}
	rt.state.SetField(lua.RegistryIndex, functionPrefix+name)
	rt.loaded[f.ID] = true
	return nil
}

// LoadAll loads every function of m. A failing function does not stop the
// rest; all failures are joined into the returned error.
func (rt *Runtime) LoadAll(m *resource.Manager) error {
	var errs []error
	for _, f := range m.Functions() {
		if err := rt.Load(f); err != nil {
			errs = append(errs, err)
		}
	}
	slog.Info("tile functions loaded", "count", len(rt.loaded), "failures", len(errs))
	return errors.Join(errs...)
}

// Loaded reports whether Call can run the function id.
func (rt *Runtime) Loaded(id ident.ID) bool {
	return rt.loaded[id]
}

// Call runs the tile function fn for the tile id placed at coord. The Lua
// function receives (coord, tile name) and may return a coordinate; ok is
// false when it returned anything else.
func (rt *Runtime) Call(fn, tile ident.ID, coord world.HexCoord) (target world.HexCoord, ok bool, err error) {
	if !rt.loaded[fn] {
		return world.HexCoord{}, false, fmt.Errorf("call %d: %w", fn, ErrNotLoaded)
	}
	name := rt.host.Name(fn).String()
	top := rt.state.Top()
	defer rt.state.SetTop(top)

	rt.state.Field(lua.RegistryIndex, functionPrefix+name)
	pushCoord(rt.state, coord)
	rt.state.PushString(rt.host.Name(tile).String())
	if err := rt.state.ProtectedCall(2, 1, 0); err != nil {
		return world.HexCoord{}, false, fmt.Errorf("call %s: %w", name, err)
	}
	target, ok = toCoord(rt.state, -1)
	return target, ok, nil
}

var engineFunctions = []lua.RegistryFunction{
	{Name: "tile_name", Function: engineTileName},
	{Name: "item_name", Function: engineItemName},
	{Name: "tile_kind", Function: engineTileKind},
	{Name: "log", Function: engineLog},
}

func hostOf(state *lua.State) Host {
	state.Field(lua.RegistryIndex, hostKey)
	host, _ := state.ToUserData(-1).(Host)
	state.Pop(1)
	if host == nil {
		lua.Errorf(state, "engine host missing")
	}
	return host
}

// checkID resolves a "namespace:name" argument. Unknown names yield ok == false.
func checkID(state *lua.State, index int, host Host) (ident.ID, bool) {
	raw, err := ident.ParseRawID(lua.CheckString(state, index))
	if err != nil {
		lua.ArgumentError(state, index, err.Error())
	}
	return host.Lookup(raw)
}

func engineTileName(state *lua.State) int {
	host := hostOf(state)
	id, ok := checkID(state, 1, host)
	if !ok {
		state.PushString("<unnamed>")
		return 1
	}
	state.PushString(host.TileName(id))
	return 1
}

func engineItemName(state *lua.State) int {
	host := hostOf(state)
	id, ok := checkID(state, 1, host)
	if !ok {
		state.PushString("<unnamed>")
		return 1
	}
	state.PushString(host.ItemName(id))
	return 1
}

func engineTileKind(state *lua.State) int {
	host := hostOf(state)
	id, ok := checkID(state, 1, host)
	if !ok {
		state.PushNil()
		return 1
	}
	tile, ok := host.Tile(id)
	if !ok {
		state.PushNil()
		return 1
	}
	state.PushString(tile.Kind.String())
	return 1
}

func engineLog(state *lua.State) int {
	slog.Info("tile function", "message", lua.CheckString(state, 1))
	return 0
}
