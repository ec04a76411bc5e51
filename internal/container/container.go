package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/KokoroRay/Shopflow-E-commerce-sub000/config"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/helpers"
	"github.com/KokoroRay/Shopflow-E-commerce-sub000/pkg/mailer"
)

// App-level container sharing constructed components across packages.
// The router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager

	mailgunClient *mailer.Mailgun
	emailQueue    *helpers.RabbitPublisher
	eventQueue    *helpers.RabbitPublisher
	esClient      *elasticsearch.Client
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetMailgun(m *mailer.Mailgun)             { mailgunClient = m }
func GetMailgun() *mailer.Mailgun              { return mailgunClient }
func SetEmailQueue(p *helpers.RabbitPublisher) { emailQueue = p }
func GetEmailQueue() *helpers.RabbitPublisher  { return emailQueue }
func SetEventQueue(p *helpers.RabbitPublisher) { eventQueue = p }
func GetEventQueue() *helpers.RabbitPublisher  { return eventQueue }
func SetES(c *elasticsearch.Client)            { esClient = c }
func GetES() *elasticsearch.Client             { return esClient }
