package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/insights-pipeline/infrastructure/crypto"
	"github.com/vfg2006/insights-pipeline/infrastructure/database/postgres"
	"github.com/vfg2006/insights-pipeline/internal/domain"
	"github.com/vfg2006/insights-pipeline/pkg/utils"
)

const accountsTable = "ad_accounts a"

type AccountRepository interface {
	GetAccountByExternalID(tenantID, externalID string) (*domain.AdAccount, error)
	ListAccounts(tenantID string, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error)
	SaveOrUpdate(accounts []*domain.AdAccount) error
	RegisterFailure(accountID, reason string, disableThreshold int) (disabled bool, err error)
	RegisterSuccess(accountID string) error
	UpdateStatus(accountID string, status domain.AdAccountStatus) error
}

type accountRepository struct {
	conn   postgres.Queryer
	cipher *crypto.TokenCipher
}

func NewAccountRepository(conn postgres.Queryer, cipher *crypto.TokenCipher) AccountRepository {
	return &accountRepository{
		conn:   conn,
		cipher: cipher,
	}
}

func (a *accountRepository) GetAccountByExternalID(tenantID, externalID string) (*domain.AdAccount, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select("a.id, a.tenant_id, a.external_id, a.name, a.currency, a.access_token, a.status, a.consecutive_errors, a.disabled_reason, a.created_at, a.updated_at").
		From(accountsTable).
		Where(squirrel.Eq{"a.tenant_id": tenantID, "a.external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := a.conn.QueryRow(accountsSQL, accountsArgs...)

	acc, err := a.deserializeAccount(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

func (a *accountRepository) deserializeAccount(row *sql.Row) (*domain.AdAccount, error) {
	acc := &domain.AdAccount{}
	var encryptedToken string

	if err := row.Scan(
		&acc.ID,
		&acc.TenantID,
		&acc.ExternalID,
		&acc.Name,
		&acc.Currency,
		&encryptedToken,
		&acc.Status,
		&acc.ConsecutiveErrors,
		&acc.DisabledReason,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	token, err := a.cipher.Decrypt(encryptedToken)
	if err != nil {
		return nil, err
	}
	acc.AccessToken = token

	return acc, nil
}

func (a *accountRepository) ListAccounts(tenantID string, availableStatus []domain.AdAccountStatus) ([]*domain.AdAccount, error) {
	queryBuilder := squirrel.
		Select("a.id, a.tenant_id, a.external_id, a.name, a.currency, a.access_token, a.status, a.consecutive_errors, a.disabled_reason, a.created_at, a.updated_at").
		From(accountsTable).
		Where(squirrel.Eq{"a.tenant_id": tenantID}).
		OrderBy("a.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": availableStatus})
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := a.conn.Query(accountsSQL, accountsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	accounts := make([]*domain.AdAccount, 0)

	for rows.Next() {
		acc := &domain.AdAccount{}
		var encryptedToken string

		if err := rows.Scan(
			&acc.ID,
			&acc.TenantID,
			&acc.ExternalID,
			&acc.Name,
			&acc.Currency,
			&encryptedToken,
			&acc.Status,
			&acc.ConsecutiveErrors,
			&acc.DisabledReason,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		); err != nil {
			return nil, err
		}

		token, err := a.cipher.Decrypt(encryptedToken)
		if err != nil {
			return nil, err
		}
		acc.AccessToken = token

		accounts = append(accounts, acc)
	}

	if len(accounts) == 0 {
		return nil, nil
	}

	return accounts, nil
}

// SaveOrUpdate insere ou atualiza contas pelo par (tenant_id, external_id).
// O token de acesso é cifrado antes de persistir
func (a *accountRepository) SaveOrUpdate(accounts []*domain.AdAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	queryBuilder := squirrel.
		Insert("ad_accounts").
		Columns("id", "tenant_id", "external_id", "name", "currency", "access_token", "status", "consecutive_errors", "created_at", "updated_at").
		PlaceholderFormat(squirrel.Dollar).
		Suffix(`ON CONFLICT (tenant_id, external_id) DO UPDATE SET
			name = EXCLUDED.name,
			currency = EXCLUDED.currency,
			access_token = EXCLUDED.access_token,
			updated_at = EXCLUDED.updated_at`)

	now := time.Now().UTC()

	for _, acc := range accounts {
		if acc.ID == "" {
			id, err := utils.GenerateID()
			if err != nil {
				return errors.Wrap(err, "erro ao gerar identificador da conta")
			}
			acc.ID = id
		}
		if acc.Status == "" {
			acc.Status = domain.AdAccountStatusActive
		}

		encryptedToken, err := a.cipher.Encrypt(acc.AccessToken)
		if err != nil {
			return err
		}

		queryBuilder = queryBuilder.Values(
			acc.ID,
			acc.TenantID,
			acc.ExternalID,
			acc.Name,
			acc.Currency,
			encryptedToken,
			acc.Status,
			acc.ConsecutiveErrors,
			now,
			now,
		)
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	if _, err := a.conn.Exec(accountsSQL, accountsArgs...); err != nil {
		logrus.WithError(err).Error("accounts: erro ao salvar ou atualizar contas")
		return err
	}

	return nil
}

// RegisterFailure incrementa o contador de erros consecutivos da conta e a
// desabilita quando o contador atinge o limite. Retorna se a conta acabou
// desabilitada nesta chamada
func (a *accountRepository) RegisterFailure(accountID, reason string, disableThreshold int) (bool, error) {
	updateSQL, updateArgs, err := squirrel.
		Update("ad_accounts").
		Set("consecutive_errors", squirrel.Expr("consecutive_errors + 1")).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": accountID}).
		Suffix("RETURNING consecutive_errors").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var consecutiveErrors int
	if err := a.conn.QueryRow(updateSQL, updateArgs...).Scan(&consecutiveErrors); err != nil {
		return false, err
	}

	if disableThreshold <= 0 || consecutiveErrors < disableThreshold {
		return false, nil
	}

	disableSQL, disableArgs, err := squirrel.
		Update("ad_accounts").
		Set("status", domain.AdAccountStatusDisabled).
		Set("disabled_reason", reason).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	if _, err := a.conn.Exec(disableSQL, disableArgs...); err != nil {
		return false, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id":         accountID,
		"consecutive_errors": consecutiveErrors,
		"reason":             reason,
	}).Warn("accounts: conta desabilitada após falhas consecutivas de autorização")

	return true, nil
}

// RegisterSuccess zera o contador de erros consecutivos da conta
func (a *accountRepository) RegisterSuccess(accountID string) error {
	updateSQL, updateArgs, err := squirrel.
		Update("ad_accounts").
		Set("consecutive_errors", 0).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = a.conn.Exec(updateSQL, updateArgs...)
	return err
}

// UpdateStatus muda o status da conta. Ao reativar, o contador de erros e o
// motivo de desabilitação são limpos
func (a *accountRepository) UpdateStatus(accountID string, status domain.AdAccountStatus) error {
	queryBuilder := squirrel.
		Update("ad_accounts").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar)

	if status == domain.AdAccountStatusActive {
		queryBuilder = queryBuilder.
			Set("consecutive_errors", 0).
			Set("disabled_reason", nil)
	}

	updateSQL, updateArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = a.conn.Exec(updateSQL, updateArgs...)
	return err
}
