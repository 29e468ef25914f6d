package script

import (
	"math"

	"github.com/Shopify/go-lua"

	"github.com/talgya/hexworks/internal/world"
)

const coordTypeName = "HexCoord"

// Direction constants exposed on the HexCoord table, in Direction order.
var directionGlobals = [6]string{"LEFT", "TOP_LEFT", "TOP_RIGHT", "RIGHT", "BOTTOM_RIGHT", "BOTTOM_LEFT"}

func registerCoordType(state *lua.State) {
	lua.NewMetaTable(state, coordTypeName)
	state.NewTable()
	lua.SetFunctions(state, coordMethods, 0)
	state.SetField(-2, "__index")
	lua.SetFunctions(state, coordMetaMethods, 0)
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, coordConstructor, 0)
	for i, name := range directionGlobals {
		pushCoord(state, world.HexNeighborDirections[i])
		state.SetField(-2, name)
	}
	pushCoord(state, world.Zero)
	state.SetField(-2, "ZERO")
	state.SetGlobal(coordTypeName)
}

var coordConstructor = []lua.RegistryFunction{
	{Name: "new", Function: coordNew},
	{Name: "parse", Function: coordParse},
}

var coordMethods = []lua.RegistryFunction{
	{Name: "q", Function: coordQ},
	{Name: "r", Function: coordR},
	{Name: "s", Function: coordS},
	{Name: "add", Function: coordAdd},
	{Name: "sub", Function: coordSub},
	{Name: "neg", Function: coordNeg},
	{Name: "mul", Function: coordMul},
	{Name: "div", Function: coordDiv},
	{Name: "eq", Function: coordEq},
	{Name: "clone", Function: coordClone},
	{Name: "distance", Function: coordDistance},
	{Name: "neighbor", Function: coordNeighbor},
	{Name: "neighbors", Function: coordNeighbors},
	{Name: "formal", Function: coordFormal},
}

var coordMetaMethods = []lua.RegistryFunction{
	{Name: "__add", Function: coordAdd},
	{Name: "__sub", Function: coordSub},
	{Name: "__unm", Function: coordNeg},
	{Name: "__eq", Function: coordEq},
	{Name: "__tostring", Function: coordToString},
}

func pushCoord(state *lua.State, c world.HexCoord) {
	state.PushUserData(c)
	lua.SetMetaTableNamed(state, coordTypeName)
}

func checkCoord(state *lua.State, index int) world.HexCoord {
	ud := lua.CheckUserData(state, index, coordTypeName)
	c, ok := ud.(world.HexCoord)
	if !ok {
		lua.ArgumentError(state, index, "HexCoord expected")
	}
	return c
}

// toCoord reads an optional coordinate without raising.
func toCoord(state *lua.State, index int) (world.HexCoord, bool) {
	ud := lua.TestUserData(state, index, coordTypeName)
	if ud == nil {
		return world.HexCoord{}, false
	}
	c, ok := ud.(world.HexCoord)
	return c, ok
}

func checkInt32(state *lua.State, index int) int32 {
	v := lua.CheckInteger(state, index)
	lua.ArgumentCheck(state, v >= math.MinInt32 && v <= math.MaxInt32, index, "out of int32 range")
	return int32(v)
}

func coordNew(state *lua.State) int {
	pushCoord(state, world.NewHexCoord(checkInt32(state, 1), checkInt32(state, 2)))
	return 1
}

func coordParse(state *lua.State) int {
	c, err := world.ParseHexCoord(lua.CheckString(state, 1))
	if err != nil {
		state.PushNil()
		state.PushString(err.Error())
		return 2
	}
	pushCoord(state, c)
	return 1
}

func coordQ(state *lua.State) int {
	state.PushInteger(int(checkCoord(state, 1).Q))
	return 1
}

func coordR(state *lua.State) int {
	state.PushInteger(int(checkCoord(state, 1).R))
	return 1
}

func coordS(state *lua.State) int {
	state.PushInteger(int(checkCoord(state, 1).S()))
	return 1
}

func coordAdd(state *lua.State) int {
	pushCoord(state, checkCoord(state, 1).Add(checkCoord(state, 2)))
	return 1
}

func coordSub(state *lua.State) int {
	pushCoord(state, checkCoord(state, 1).Sub(checkCoord(state, 2)))
	return 1
}

func coordNeg(state *lua.State) int {
	pushCoord(state, checkCoord(state, 1).Neg())
	return 1
}

func coordMul(state *lua.State) int {
	pushCoord(state, checkCoord(state, 1).Mul(checkInt32(state, 2)))
	return 1
}

func coordDiv(state *lua.State) int {
	c := checkCoord(state, 1)
	k := checkInt32(state, 2)
	lua.ArgumentCheck(state, k != 0, 2, "division by zero")
	pushCoord(state, c.Div(k))
	return 1
}

func coordEq(state *lua.State) int {
	state.PushBoolean(checkCoord(state, 1) == checkCoord(state, 2))
	return 1
}

func coordClone(state *lua.State) int {
	pushCoord(state, checkCoord(state, 1))
	return 1
}

func coordDistance(state *lua.State) int {
	state.PushInteger(int(checkCoord(state, 1).Distance(checkCoord(state, 2))))
	return 1
}

func coordNeighbor(state *lua.State) int {
	c := checkCoord(state, 1)
	dir := lua.CheckInteger(state, 2)
	lua.ArgumentCheck(state, dir >= 0 && dir < 6, 2, "direction out of range")
	pushCoord(state, c.Neighbor(world.Direction(dir)))
	return 1
}

func coordNeighbors(state *lua.State) int {
	c := checkCoord(state, 1)
	state.CreateTable(6, 0)
	for i, n := range c.Neighbors() {
		pushCoord(state, n)
		state.RawSetInt(-2, i+1)
	}
	return 1
}

func coordFormal(state *lua.State) int {
	state.PushString(checkCoord(state, 1).FormalString())
	return 1
}

func coordToString(state *lua.State) int {
	state.PushString(checkCoord(state, 1).String())
	return 1
}
