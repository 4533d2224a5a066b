package cli

import (
	"context"
	"fmt"

	intconfig "tripplanner/internal/config"
	intdb "tripplanner/internal/db"
	"tripplanner/internal/repositories"
)

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, env intconfig.Env) (repositories.Store, func(), error) {
	switch env.StoreDriver {
	case intconfig.StoreMemory:
		return repositories.NewMemoryStore(), func() {}, nil

	case intconfig.StoreMongo:
		client, err := intconfig.ConnectMongo(env.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		return repositories.NewMongoStore(client, env.MongoDB), func() { _ = client.Disconnect(context.Background()) }, nil

	case intconfig.StoreMySQL:
		conn, err := intconfig.ConnectDB(env.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mysql: %w", err)
		}
		if err := intdb.EnsureSchema(ctx, conn); err != nil {
			intconfig.CloseDB()
			return nil, nil, err
		}
		return repositories.MySQLStore{DB: conn}, intconfig.CloseDB, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", env.StoreDriver)
}
