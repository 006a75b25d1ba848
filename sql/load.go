package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed kv.sql
var kvSQL string

// Function list for verification
var KVFunctions = []string{
	"init_kv",
	"kv_set",
	"kv_get",
	"kv_delete",
}

// LoadKVSql loads the key-value SQL functions
func LoadKVSql(db *sql.DB, force bool) error {
	if !force {
		exist, err := checkFunctions(db, KVFunctions)
		if err != nil {
			return fmt.Errorf("error checking existing kv functions: %w", err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(kvSQL)
	if err != nil {
		return fmt.Errorf("error executing kv SQL: %w", err)
	}

	exist, err := checkFunctions(db, KVFunctions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Println("SQL kv functions loaded successfully")
	return nil
}

// checkFunctions verifies that all required functions exist in the database
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
