package main

import (
	"go.uber.org/fx"

	"CareerGo/internal/bootstrap"
	pkg "CareerGo/pkg/routes"
)

func main() {
	bootstrap.LoadDotenv()

	app := fx.New(
		pkg.EchoModules,
	)

	app.Run()
}
