// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package model

//go:generate mockgen -source logger.go -destination modelmocks/logger.go -package modelmocks
//go:generate mockgen -source runner.go -destination modelmocks/runner.go -package modelmocks
//go:generate mockgen -source extractor.go -destination modelmocks/extractor.go -package modelmocks
//go:generate mockgen -source archive.go -destination modelmocks/archive.go -package modelmocks
