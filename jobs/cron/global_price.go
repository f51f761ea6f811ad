package cron

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/types"
)

type GlobalPriceJob struct {
}

func (j *GlobalPriceJob) Process() {
	var global_price types.GlobalPrice

	resp, err := http.Get("https://min-api.cryptocompare.com/data/pricemulti?fsyms=USD,USDT&tsyms=USD,USDT,EUR,VND,CNY,JPY")
	if err != nil {
		config.Logger.Errorf("Failed to fetch global price %v", err)
		return
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		config.Logger.Errorf("Failed to read global price response %v", err)
		return
	}

	if err := json.Unmarshal(body, &global_price); err != nil {
		config.Logger.Errorf("Failed to parse global price %v", err)
		return
	}

	config.Redis.SetKey("obex:h24:global_price", global_price, redis.KeepTTL)

	time.Sleep(10 * time.Minute)
}
