package main

import (
	"fmt"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/mq_client"
	"github.com/zsmartex/obex/routes"
)

func main() {
	if err := config.InitializeConfig(); err != nil {
		fmt.Println(err.Error())
		return
	}
	mq_client.Connect()

	r := routes.SetupRouter()
	// running
	r.Listen(":3000")
}
