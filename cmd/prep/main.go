package main

import "github.com/ttu/emergency-supply-tracker-sub006/cmd/prep/root"

func main() {
	root.Execute()
}
