// @title hrmsops report API
// @version 1.0
// @description Read-only tenant reports over the HRMS databases.
// @host localhost:8000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "github.com/vibhu2208/hrms-backend-sub007/internal/commands"

func main() {
	commands.Execute()
}
