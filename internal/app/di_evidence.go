package app

import (
	"fmt"

	"github.com/allisson/custody/internal/database"
	evidenceHTTP "github.com/allisson/custody/internal/evidence/http"
	evidenceRepository "github.com/allisson/custody/internal/evidence/repository"
	evidenceUseCase "github.com/allisson/custody/internal/evidence/usecase"
)

// EvidenceRepository returns the evidence repository based on database driver.
func (c *Container) EvidenceRepository() (evidenceUseCase.EvidenceRepository, error) {
	var err error
	c.evidenceRepositoryInit.Do(func() {
		c.evidenceRepository, err = c.initEvidenceRepository()
		if err != nil {
			c.initErrors["evidenceRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["evidenceRepository"]; exists {
		return nil, storedErr
	}
	return c.evidenceRepository, nil
}

// EvidenceUseCase returns the evidence registry use case.
func (c *Container) EvidenceUseCase() (evidenceUseCase.EvidenceUseCase, error) {
	var err error
	c.evidenceUseCaseInit.Do(func() {
		c.evidenceUseCase, err = c.initEvidenceUseCase()
		if err != nil {
			c.initErrors["evidenceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["evidenceUseCase"]; exists {
		return nil, storedErr
	}
	return c.evidenceUseCase, nil
}

// EvidenceHandler returns the HTTP handler for evidence registry operations.
func (c *Container) EvidenceHandler() (*evidenceHTTP.EvidenceHandler, error) {
	var err error
	c.evidenceHandlerInit.Do(func() {
		c.evidenceHandler, err = c.initEvidenceHandler()
		if err != nil {
			c.initErrors["evidenceHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["evidenceHandler"]; exists {
		return nil, storedErr
	}
	return c.evidenceHandler, nil
}

// initEvidenceRepository creates the evidence repository based on the database driver.
func (c *Container) initEvidenceRepository() (evidenceUseCase.EvidenceRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for evidence repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return evidenceRepository.NewPostgreSQLEvidenceRepository(db), nil
	case database.DriverMySQL:
		return evidenceRepository.NewMySQLEvidenceRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initEvidenceUseCase creates the evidence use case with all its dependencies.
func (c *Container) initEvidenceUseCase() (evidenceUseCase.EvidenceUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for evidence use case: %w", err)
	}

	evidenceRepo, err := c.EvidenceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence repository for evidence use case: %w", err)
	}

	custodyRepo, err := c.CustodyEventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get custody event repository for evidence use case: %w", err)
	}

	baseUseCase := evidenceUseCase.NewEvidenceUseCase(
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
			return nil, fmt.Errorf("failed to get business metrics for evidence use case: %w", err)
		}
		return evidenceUseCase.NewEvidenceUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initEvidenceHandler creates the evidence HTTP handler with all its dependencies.
func (c *Container) initEvidenceHandler() (*evidenceHTTP.EvidenceHandler, error) {
	useCase, err := c.EvidenceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence use case for evidence handler: %w", err)
	}

	return evidenceHTTP.NewEvidenceHandler(useCase, c.Logger()), nil
}
