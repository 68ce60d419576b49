package price

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/logger"
)

const (
	TokenArweave = "arweave"
	TokenSolana  = "solana"
)

// Oracle quotes spot prices of tokens in USD.
// Quotes are cached, the upstream rate limits aggressively.
type Oracle struct {
	client *resty.Client
	quotes *cache.Cache
	log    *logrus.Entry
}

func NewOracle(config *config.Config) (self *Oracle) {
	self = new(Oracle)
	self.log = logger.NewSublogger("oracle")
	self.quotes = cache.New(config.PriceOracle.CacheTTL, config.PriceOracle.CacheTTL)
	self.client = resty.New().
		SetBaseURL(config.PriceOracle.Url).
		SetTimeout(config.PriceOracle.RequestTimeout).
		SetHeader("Accept", "application/json")
	return
}

// GetUsdPrice returns how many USD one token is worth
func (self *Oracle) GetUsdPrice(ctx context.Context, token string) (out float64, err error) {
	cached, ok := self.quotes.Get(token)
	if ok {
		return cached.(float64), nil
	}

	resp, err := self.client.R().
		SetContext(ctx).
		SetQueryParam("ids", token).
		SetQueryParam("vs_currencies", "usd").
		SetResult(map[string]map[string]float64{}).
		ForceContentType("application/json").
		Get("/simple/price")
	if err != nil {
		return
	}
	if resp.IsError() {
		err = ErrOraclePrice
		return
	}

	quotes, ok := resp.Result().(*map[string]map[string]float64)
	if !ok {
		err = ErrOraclePrice
		return
	}

	out, ok = (*quotes)[token]["usd"]
	if !ok || out <= 0 {
		self.log.WithField("token", token).Warn("Oracle response misses the quote")
		err = ErrOraclePrice
		return
	}

	self.quotes.SetDefault(token, out)
	return
}

// UsdForWinstons converts a winston amount at the given AR spot price
func UsdForWinstons(winstons uint64, usdPerAr float64) float64 {
	return float64(winstons) / WINSTONS_PER_AR * usdPerAr
}
