package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema holds the table definitions applied on startup. CREATE TABLE IF
// NOT EXISTS keeps restarts idempotent; column changes still need a
// manual migration.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          ENUM('buyer','seller') NOT NULL,
		full_name     VARCHAR(255) NOT NULL DEFAULT '',
		contact_info  VARCHAR(255) NOT NULL DEFAULT '',
		is_active     TINYINT(1) NOT NULL DEFAULT 1,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS buyer_preferences (
		user_id                BIGINT UNSIGNED NOT NULL PRIMARY KEY,
		preferred_brand        VARCHAR(100) NULL,
		preferred_model        VARCHAR(100) NULL,
		min_year               INT NULL,
		max_year               INT NULL,
		min_power              INT NULL,
		max_power              INT NULL,
		preferred_transmission VARCHAR(20) NULL,
		preferred_condition    VARCHAR(20) NULL,
		max_price              DECIMAL(12,2) NULL,
		CONSTRAINT fk_prefs_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS stores (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		owner_id   BIGINT UNSIGNED NOT NULL,
		name       VARCHAR(255) NOT NULL,
		address    VARCHAR(255) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_stores_owner_name (owner_id, name),
		CONSTRAINT fk_stores_owner FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS cars (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		seller_id     BIGINT UNSIGNED NOT NULL,
		store_id      BIGINT UNSIGNED NOT NULL,
		brand         VARCHAR(100) NOT NULL,
		model         VARCHAR(100) NOT NULL,
		year          INT NOT NULL,
		price         DECIMAL(12,2) NOT NULL,
		mileage       INT NOT NULL DEFAULT 0,
		transmission  VARCHAR(20) NOT NULL,
		fuel_type     VARCHAR(20) NOT NULL DEFAULT '',
		car_condition VARCHAR(20) NOT NULL,
		power         INT NOT NULL DEFAULT 0,
		color         VARCHAR(50) NOT NULL DEFAULT '',
		features      TEXT NULL,
		images        TEXT NULL,
		status        ENUM('active','inactive','sold') NOT NULL DEFAULT 'active',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_cars_seller (seller_id),
		KEY idx_cars_status (status),
		CONSTRAINT fk_cars_store FOREIGN KEY (store_id) REFERENCES stores(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		car_id     BIGINT UNSIGNED NOT NULL,
		buyer_id   BIGINT UNSIGNED NOT NULL,
		seller_id  BIGINT UNSIGNED NOT NULL,
		price      DECIMAL(12,2) NOT NULL,
		status     ENUM('pending','approved','rejected','completed') NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_orders_buyer (buyer_id),
		KEY idx_orders_seller (seller_id),
		KEY idx_orders_car (car_id),
		CONSTRAINT fk_orders_car FOREIGN KEY (car_id) REFERENCES cars(id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		buyer_id BIGINT UNSIGNED NOT NULL,
		car_id   BIGINT UNSIGNED NOT NULL,
		added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_favorites_pair (buyer_id, car_id),
		CONSTRAINT fk_fav_buyer FOREIGN KEY (buyer_id) REFERENCES users(id) ON DELETE CASCADE,
		CONSTRAINT fk_fav_car   FOREIGN KEY (car_id) REFERENCES cars(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS questions (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		car_id     BIGINT UNSIGNED NOT NULL,
		buyer_id   BIGINT UNSIGNED NOT NULL,
		question   TEXT NOT NULL,
		answer     TEXT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_questions_car (car_id),
		CONSTRAINT fk_q_car FOREIGN KEY (car_id) REFERENCES cars(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
