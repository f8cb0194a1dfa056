package db

// PostgresSchema crea las tablas del servicio. Los vectores de constitucion se guardan
// como vector(3) (pgvector) en el orden vata, pitta, kapha.
const PostgresSchema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS constitution_profiles (
    id                UUID PRIMARY KEY,
    subject_id        TEXT NOT NULL UNIQUE,
    baseline_vector   vector(3) NOT NULL,
    current_vector    vector(3) NOT NULL,
    primary_type      TEXT NOT NULL,
    secondary_type    TEXT NOT NULL,
    current_primary   TEXT NOT NULL,
    current_secondary TEXT NOT NULL,
    imbalance         BOOLEAN NOT NULL DEFAULT FALSE,
    last_assessed_at  TIMESTAMPTZ NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL,
    updated_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS assessments (
    id             UUID PRIMARY KEY,
    profile_id     UUID NOT NULL REFERENCES constitution_profiles(id) ON DELETE CASCADE,
    subject_id     TEXT NOT NULL,
    answers        JSONB NOT NULL,
    raw_vector     vector(3) NOT NULL,
    scores_vector  vector(3) NOT NULL,
    primary_type   TEXT NOT NULL,
    secondary_type TEXT NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_assessments_subject ON assessments(subject_id, created_at DESC);

CREATE TABLE IF NOT EXISTS food_log_entries (
    id           UUID PRIMARY KEY,
    subject_id   TEXT NOT NULL,
    food_id      TEXT NOT NULL,
    food_name    TEXT NOT NULL,
    meal_type    TEXT NOT NULL DEFAULT '',
    servings     DOUBLE PRECISION NOT NULL DEFAULT 1,
    calories     DOUBLE PRECISION NOT NULL DEFAULT 0,
    effect_vata  INTEGER NOT NULL,
    effect_pitta INTEGER NOT NULL,
    effect_kapha INTEGER NOT NULL,
    consumed_at  TIMESTAMPTZ NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_food_log_subject_time ON food_log_entries(subject_id, consumed_at);
`

// SQLiteSchema es el esquema local usado por la CLI.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS constitution_profiles (
    id                TEXT PRIMARY KEY,
    subject_id        TEXT NOT NULL UNIQUE,
    baseline_vata     INTEGER NOT NULL,
    baseline_pitta    INTEGER NOT NULL,
    baseline_kapha    INTEGER NOT NULL,
    current_vata      INTEGER NOT NULL,
    current_pitta     INTEGER NOT NULL,
    current_kapha     INTEGER NOT NULL,
    primary_type      TEXT NOT NULL,
    secondary_type    TEXT NOT NULL,
    current_primary   TEXT NOT NULL,
    current_secondary TEXT NOT NULL,
    imbalance         INTEGER NOT NULL DEFAULT 0,
    last_assessed_at  TEXT NOT NULL,
    created_at        TEXT NOT NULL,
    updated_at        TEXT NOT NULL
);
`
