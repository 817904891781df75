package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UserRegistrations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_user_registrations_total",
		Help: "Total number of successful registrations",
	})

	// Logins by result: success, invalid_credentials
	UserLogins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_user_logins_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})

	CartAdds = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_cart_adds_total",
		Help: "Total number of add-to-cart calls",
	})

	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shop_orders_created_total",
		Help: "Total number of orders placed",
	})

	// Failed checkouts by reason: empty_cart, insufficient_stock, error
	OrderFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_order_failures_total",
		Help: "Total number of failed checkouts by reason",
	}, []string{"reason"})

	OrderAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shop_order_amount",
		Help:    "Order totals",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
	})

	ProductCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_product_cache_lookups_total",
		Help: "Product cache lookups by result: hit, miss, error",
	}, []string{"result"})
)

var once sync.Once

func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			UserRegistrations,
			UserLogins,
			CartAdds,
			OrdersCreated,
			OrderFailures,
			OrderAmount,
			ProductCacheLookups,
		)
	})
}
