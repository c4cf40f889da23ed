// Command seedadmin creates the first admin user for a company so there is
// a login to bootstrap from. Usage:
//
//	seedadmin -company acme -username admin -password secret
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"billtrack/internal/config"
	"billtrack/internal/infra"
	"billtrack/internal/model"
	"billtrack/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	company := flag.String("company", "", "company identifier the admin belongs to")
	username := flag.String("username", "admin", "login username")
	name := flag.String("name", "Administrator", "display name")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	if *company == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: seedadmin -company <id> -password <pw> [-username admin] [-name Administrator]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config", err)
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		fatal("connect database", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		fatal("hash password", err)
	}

	users := repository.NewUserRepository(db)
	user := &model.User{
		CompanyID:    *company,
		Username:     *username,
		Name:         *name,
		PasswordHash: string(hash),
		Role:         "admin",
		Active:       true,
	}
	if err := users.Create(context.Background(), user); err != nil {
		fatal("create user", err)
	}

	fmt.Printf("created admin %q (id %s) for company %q\n", user.Username, user.ID, user.CompanyID)
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "seedadmin: %s: %v\n", what, err)
	os.Exit(1)
}
