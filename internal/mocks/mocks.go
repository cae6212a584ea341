// Package mocks contiene mocks gomock de los puertos de dominio.
package mocks

//go:generate mockgen -source=../domain/repository/user_repository.go -destination=user_repository_mock.go -package=mocks
//go:generate mockgen -source=../domain/repository/session_store.go -destination=session_store_mock.go -package=mocks
