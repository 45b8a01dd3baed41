package main

import "github.com/Dosada05/court-finder/cli"

// @title Court Finder API
// @version 1.0
// @description Каталог спортивных площадок: площадки, виды спорта, порядок показа и вход администраторов.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cli.Execute()
}
