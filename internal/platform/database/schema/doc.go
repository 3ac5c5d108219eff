// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds table and column names for every relation the API
// touches, so queries never spell identifiers inline.
package schema
