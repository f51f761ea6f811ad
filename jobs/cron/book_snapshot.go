package cron

import (
	"github.com/jasonlvhit/gocron"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/models"
	"github.com/zsmartex/obex/services/depth_service"
	"github.com/zsmartex/obex/types"
)

// BookSnapshotJob periodically records each market's cached depth so book
// liquidity can be charted over time.
type BookSnapshotJob struct {
}

func (j *BookSnapshotJob) Process() {
	s := gocron.NewScheduler()
	s.Every(1).Minute().Do(snapshotBooks)
	<-s.Start()
}

func snapshotBooks() {
	var markets []models.Market

	config.DataBase.Where("state = ?", types.MarketStateEndabled).Find(&markets)

	for _, market := range markets {
		depth := depth_service.Fetch(market.Symbol)

		tags := map[string]string{"market": market.Symbol}
		fields := map[string]interface{}{
			"ask_levels": len(depth.Asks),
			"bid_levels": len(depth.Bids),
			"sequence":   int64(depth.Sequence),
		}

		config.InfluxDB.NewPoint("depth_snapshots", tags, fields)
	}
}
