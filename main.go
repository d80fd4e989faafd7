package main

import (
	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	_ "github.com/Electron-Labs/pointproofs-gnark/cmd/build"
	_ "github.com/Electron-Labs/pointproofs-gnark/cmd/prove"
	_ "github.com/Electron-Labs/pointproofs-gnark/cmd/vc"
)

func main() {
	cmd.Execute()
}
