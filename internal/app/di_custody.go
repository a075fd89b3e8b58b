package app

import (
	"fmt"

	custodyHTTP "github.com/allisson/custody/internal/custody/http"
	custodyRepository "github.com/allisson/custody/internal/custody/repository"
	custodyUseCase "github.com/allisson/custody/internal/custody/usecase"
	"github.com/allisson/custody/internal/database"
)

// CustodyEventRepository returns the custody event repository based on database driver.
func (c *Container) CustodyEventRepository() (custodyUseCase.CustodyEventRepository, error) {
	var err error
	c.custodyEventRepositoryInit.Do(func() {
		c.custodyEventRepository, err = c.initCustodyEventRepository()
		if err != nil {
			c.initErrors["custodyEventRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["custodyEventRepository"]; exists {
		return nil, storedErr
	}
	return c.custodyEventRepository, nil
}

// CustodyUseCase returns the custody ledger use case.
func (c *Container) CustodyUseCase() (custodyUseCase.CustodyUseCase, error) {
	var err error
	c.custodyUseCaseInit.Do(func() {
		c.custodyUseCase, err = c.initCustodyUseCase()
		if err != nil {
			c.initErrors["custodyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["custodyUseCase"]; exists {
		return nil, storedErr
	}
	return c.custodyUseCase, nil
}

// CustodyHandler returns the HTTP handler for custody ledger operations.
func (c *Container) CustodyHandler() (*custodyHTTP.CustodyHandler, error) {
	var err error
	c.custodyHandlerInit.Do(func() {
		c.custodyHandler, err = c.initCustodyHandler()
		if err != nil {
			c.initErrors["custodyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["custodyHandler"]; exists {
		return nil, storedErr
	}
	return c.custodyHandler, nil
}

// initCustodyEventRepository creates the custody event repository based on the database driver.
func (c *Container) initCustodyEventRepository() (custodyUseCase.CustodyEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for custody event repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return custodyRepository.NewPostgreSQLCustodyEventRepository(db), nil
	case database.DriverMySQL:
		return custodyRepository.NewMySQLCustodyEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCustodyUseCase creates the custody use case with all its dependencies.
func (c *Container) initCustodyUseCase() (custodyUseCase.CustodyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for custody use case: %w", err)
	}

	evidenceRepo, err := c.EvidenceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence repository for custody use case: %w", err)
	}

	custodyRepo, err := c.CustodyEventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get custody event repository for custody use case: %w", err)
	}

	baseUseCase := custodyUseCase.NewCustodyUseCase(
		custodyUseCase.Config{VerifyConcurrency: c.config.CustodyVerifyConcurrency},
		txManager,
		evidenceRepo,
		custodyRepo,
		c.Locker(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for custody use case: %w", err)
		}
		return custodyUseCase.NewCustodyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCustodyHandler creates the custody HTTP handler with all its dependencies.
func (c *Container) initCustodyHandler() (*custodyHTTP.CustodyHandler, error) {
	useCase, err := c.CustodyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get custody use case for custody handler: %w", err)
	}

	return custodyHTTP.NewCustodyHandler(useCase, c.Logger()), nil
}
