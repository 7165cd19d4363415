package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	slug TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	genre TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS article_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS folders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL,
	parent_id INTEGER,
	name TEXT NOT NULL,
	slug TEXT NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY(project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY(parent_id) REFERENCES folders(id) ON DELETE CASCADE,
	UNIQUE(project_id, parent_id, slug)
);

CREATE TABLE IF NOT EXISTS articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL,
	folder_id INTEGER,
	type_id INTEGER NOT NULL,
	slug TEXT NOT NULL,
	title TEXT NOT NULL,
	body_content TEXT NOT NULL DEFAULT '',
	featured_image TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY(project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY(folder_id) REFERENCES folders(id) ON DELETE CASCADE,
	FOREIGN KEY(type_id) REFERENCES article_types(id),
	UNIQUE(project_id, slug)
);

CREATE TABLE IF NOT EXISTS prompts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	article_type_id INTEGER NOT NULL,
	key TEXT NOT NULL,
	text TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT 'text',
	linked_type_key TEXT,
	FOREIGN KEY(article_type_id) REFERENCES article_types(id) ON DELETE CASCADE,
	UNIQUE(article_type_id, key)
);

CREATE TABLE IF NOT EXISTS prompt_values (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	article_id INTEGER NOT NULL,
	prompt_id INTEGER NOT NULL,
	value TEXT,
	linked_article_id INTEGER,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY(article_id) REFERENCES articles(id) ON DELETE CASCADE,
	FOREIGN KEY(prompt_id) REFERENCES prompts(id) ON DELETE CASCADE,
	FOREIGN KEY(linked_article_id) REFERENCES articles(id) ON DELETE SET NULL,
	UNIQUE(article_id, prompt_id)
);

CREATE INDEX IF NOT EXISTS idx_folders_project_id ON folders(project_id);
CREATE INDEX IF NOT EXISTS idx_folders_parent_id ON folders(parent_id);
CREATE INDEX IF NOT EXISTS idx_articles_project_id ON articles(project_id);
CREATE INDEX IF NOT EXISTS idx_articles_folder_id ON articles(folder_id);
CREATE INDEX IF NOT EXISTS idx_articles_type_id ON articles(type_id);
CREATE INDEX IF NOT EXISTS idx_prompt_values_article_id ON prompt_values(article_id);
`

var defaultArticleTypes = []struct {
	key  string
	name string
}{
	{"npc", "NPC"},
	{"location", "Location"},
	{"settlement", "Settlement"},
	{"faction", "Faction"},
	{"item", "Item"},
	{"species", "Species"},
	{"conflict", "Conflict"},
}

// Structured-field catalog seeded per article type. Select prompts
// link answers to articles of another type.
var defaultPrompts = []struct {
	typeKey       string
	key           string
	text          string
	kind          string
	linkedTypeKey string
}{
	{"npc", "age", "Age", "text", ""},
	{"npc", "hometown", "Home town", "select", "settlement"},
	{"npc", "affiliation", "Affiliation", "select", "faction"},
	{"npc", "profession", "Profession", "text", ""},
	{"settlement", "population", "Population", "text", ""},
	{"settlement", "ruling_entity", "Ruling Entity", "select", "faction"},
	{"faction", "founding_date", "Founding Date", "text", ""},
	{"faction", "headquarters", "Headquarters", "select", "settlement"},
	{"faction", "leader", "Leader", "select", "npc"},
}
