package main

import "xpeak/cmd/xpeak/root"

func main() {
	root.Execute()
}
