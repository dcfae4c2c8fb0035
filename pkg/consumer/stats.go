package consumer

import (
	"fmt"
	"net/http"

	"github.com/adjust/rmq/v5"
	"github.com/redis/go-redis/v9"
)

type StatsServerHandler struct {
	redisConnection rmq.Connection
}

func NewStatsHandler(connection rmq.Connection) *StatsServerHandler {
	return &StatsServerHandler{redisConnection: connection}
}

func (handler *StatsServerHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	layout := request.FormValue("layout")
	refresh := request.FormValue("refresh")

	queues, err := handler.redisConnection.GetOpenQueues()
	if err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(writer, err)
		return
	}

	stats, err := handler.redisConnection.CollectStats(queues)
	if err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(writer, err)
		return
	}

	fmt.Fprint(writer, stats.GetHtml(layout, refresh))
}

type HealthHandler struct {
	redisClient *redis.Client
}

func NewHealthHandler(client *redis.Client) *HealthHandler {
	return &HealthHandler{redisClient: client}
}

func (handler *HealthHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if err := handler.redisClient.Ping(request.Context()).Err(); err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(writer, err)

		return
	}

	writer.WriteHeader(http.StatusOK)
	fmt.Fprint(writer, "ok")
}
