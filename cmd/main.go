package main

import "github.com/sm8ta/hospital_frontend/internal/cli"

func main() {
	cli.InitAndExecute()
}
