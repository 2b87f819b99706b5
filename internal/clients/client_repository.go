package clients

import (
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repository"
	custom_error "github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/errors"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/models"
)

var ErrClientNotFound = errors.New("client not found")

type ClientRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ClientRepository {
	return &ClientRepository{repository: r}
}

var clientColumns = []interface{}{
	"id", "client_name", "contact_person", "email", "phone", "city",
	"billing_rate", "active", "created_at", "updated_at",
}

func (r *ClientRepository) GetClients(activeOnly bool) ([]models.Client, error) {
	query := r.repository.Builder.
		From("clients").
		Select(clientColumns...).
		Order(goqu.I("client_name").Asc())

	if activeOnly {
		query = query.Where(goqu.Ex{"active": true})
	}

	var clients []models.Client
	if err := query.Executor().ScanStructs(&clients); err != nil {
		return nil, fmt.Errorf("failed to select clients: %w", err)
	}

	return clients, nil
}

func (r *ClientRepository) GetClient(id int) (*models.Client, error) {
	query := r.repository.Builder.
		From("clients").
		Select(clientColumns...).
		Where(goqu.Ex{"id": id})

	var client models.Client
	found, err := query.Executor().ScanStruct(&client)
	if err != nil {
		return nil, fmt.Errorf("failed to select client: %w", err)
	}
	if !found {
		return nil, ErrClientNotFound
	}

	return &client, nil
}

func (r *ClientRepository) PersistClient(req models.CreateClientRequest) (*models.Client, error) {
	query := r.repository.Builder.Insert("clients").
		Rows(goqu.Record{
			"client_name":    req.Name,
			"contact_person": req.ContactPerson,
			"email":          req.Email,
			"phone":          req.Phone,
			"city":           req.City,
			"billing_rate":   req.BillingRate,
			"active":         true,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, custom_error.WrapDriverError("Duplicate client name", err)
	}

	var client models.Client
	found, err := r.repository.Builder.
		From("clients").
		Select(clientColumns...).
		Where(goqu.Ex{"client_name": req.Name}).
		Executor().
		ScanStruct(&client)
	if err != nil || !found {
		return nil, fmt.Errorf("failed to reload created client: %w", err)
	}

	return &client, nil
}

func (r *ClientRepository) UpdateClient(clientID int, changes *models.ClientChanges) error {
	record := goqu.Record{"updated_at": time.Now()}
	if changes.ContactPerson != nil {
		record["contact_person"] = *changes.ContactPerson
	}
	if changes.Email != nil {
		record["email"] = *changes.Email
	}
	if changes.Phone != nil {
		record["phone"] = *changes.Phone
	}
	if changes.City != nil {
		record["city"] = *changes.City
	}
	if changes.BillingRate != nil {
		record["billing_rate"] = *changes.BillingRate
	}
	if changes.Active != nil {
		record["active"] = *changes.Active
	}

	result, err := r.repository.Builder.Update("clients").
		Set(record).
		Where(goqu.Ex{"id": clientID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrClientNotFound
	}

	return nil
}
