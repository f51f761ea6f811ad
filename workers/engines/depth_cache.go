package engines

import (
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/models"
	engine "github.com/zsmartex/obex/server"
	"github.com/zsmartex/obex/services/depth_service"
	"github.com/zsmartex/obex/types"
)

type DepthWorker struct {
	Depths map[string]*depth_service.DepthService
}

func NewDepthCacheWorker() *DepthWorker {
	depth_worker := &DepthWorker{
		Depths: make(map[string]*depth_service.DepthService),
	}

	depth_worker.Reload("all")

	return depth_worker
}

func (w *DepthWorker) Process(payload []byte) error {
	var change engine.DepthChangePayload
	if err := json.Unmarshal(payload, &change); err != nil {
		return err
	}

	depth := w.Depths[change.Market]
	if depth == nil {
		depth = w.AddNewDepth(change.Market)
	}

	depth.Update(string(change.Side), change.Price, change.Available)

	if err := config.Redis.SetKey("obex:"+change.Market+":depth:asks", depth.ToJSON().Asks, redis.KeepTTL); err != nil {
		return err
	}
	if err := config.Redis.SetKey("obex:"+change.Market+":depth:bids", depth.ToJSON().Bids, redis.KeepTTL); err != nil {
		return err
	}

	return config.Redis.SetKey("obex:"+change.Market+":depth:sequence", depth.Sequence, redis.KeepTTL)
}

func (w *DepthWorker) Reload(market string) {
	switch market {
	case "all":
		var markets []models.Market

		config.DataBase.Where("state = ?", types.MarketStateEndabled).Find(&markets)
		for _, m := range markets {
			w.AddNewDepth(m.Symbol)
		}

		config.Logger.Info("All depths reloaded.")
	default:
		w.AddNewDepth(market)
		config.Logger.Infof("%s depth reloaded.", market)
	}
}

func (w *DepthWorker) AddNewDepth(market string) *depth_service.DepthService {
	w.Depths[market] = depth_service.Fetch(market)

	return w.Depths[market]
}
