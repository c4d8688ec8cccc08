package main

import "github.com/ValentinKolb/dPaste/cmd"

func main() {
	cmd.Execute()
}
