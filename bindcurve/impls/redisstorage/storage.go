package redisstorage

import (
	"context"
	"errors"

	"github.com/bindkit/libbinding/bindcurve"
	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"gopkg.in/yaml.v3"
)

func NewRedisStorage(preKey string, redisCli *redis.Client, logger l.Wrapper) bindcurve.Storage {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "curveStorage"))

	if redisCli == nil {
		logger.Fatal("no redis client")
	}

	return &curveStorage{
		logger:   logger,
		preKey:   preKey,
		redisCli: redisCli,
	}
}

type curveStorage struct {
	logger   l.Wrapper
	preKey   string
	redisCli *redis.Client
}

func (stg *curveStorage) curvesKey(key string) string {
	return stg.preKey + ":curves:" + key
}

func (stg *curveStorage) Save(key string, curves []*bindcurve.Curve) (err error) {
	d, err := yaml.Marshal(curves)
	if err != nil {
		return
	}

	err = stg.redisCli.Set(context.Background(), stg.curvesKey(key), string(d), 0).Err()

	return
}

func (stg *curveStorage) Load(key string) (curves []*bindcurve.Curve, err error) {
	d, err := stg.redisCli.Get(context.Background(), stg.curvesKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = commerr.ErrNotFound
		}

		return
	}

	err = yaml.Unmarshal([]byte(d), &curves)

	return
}
