package main

import (
	"context"

	"amc-crm/internal/pkg"

	"github.com/sirupsen/logrus"
)

// @title AMC CRM API
// @version 1.0
// @description Бэкенд панели администрирования AMC-сервисной компании: клиенты, заказы, платежи АМС, напоминания и отчеты

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app, err := pkg.NewApp(context.Background())
	if err != nil {
		logrus.Fatal(err)
	}
	defer func() {
		if err := app.RedisClient.Close(); err != nil {
			logrus.Error("Error closing redis: ", err)
		}
	}()

	app.RunApp()
}
