package main

import "github.com/manifest-network/onesum/cmd/onesum"

func main() {
	onesum.Execute()
}
