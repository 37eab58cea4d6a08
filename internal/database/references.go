package database

// InsertReference stores a research reference article. Returns the ID on
// success, 0 for a duplicate URL.
func (db *DB) InsertReference(keyword, url, title string, source, publishedDate *string) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO reference_articles (keyword, url, title, source, published_date)
		VALUES (?, ?, ?, ?, ?)`,
		keyword, url, title, source, publishedDate,
	)
	if err != nil {
		// Duplicate URL constraint
		return 0, nil //nolint: nilerr
	}
	return result.LastInsertId()
}

// GetReferencesForKeyword returns reference articles collected for a keyword,
// newest first.
func (db *DB) GetReferencesForKeyword(keyword string) ([]ReferenceArticle, error) {
	rows, err := db.conn.Query(
		`SELECT id, keyword, url, title, source, published_date, collected_at
		FROM reference_articles WHERE keyword = ? ORDER BY collected_at DESC`, keyword,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []ReferenceArticle
	for rows.Next() {
		var ref ReferenceArticle
		if err := rows.Scan(&ref.ID, &ref.Keyword, &ref.URL, &ref.Title,
			&ref.Source, &ref.PublishedDate, &ref.CollectedAt); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// GetAllReferences returns every collected reference article, newest first.
func (db *DB) GetAllReferences() ([]ReferenceArticle, error) {
	rows, err := db.conn.Query(
		`SELECT id, keyword, url, title, source, published_date, collected_at
		FROM reference_articles ORDER BY collected_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []ReferenceArticle
	for rows.Next() {
		var ref ReferenceArticle
		if err := rows.Scan(&ref.ID, &ref.Keyword, &ref.URL, &ref.Title,
			&ref.Source, &ref.PublishedDate, &ref.CollectedAt); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
